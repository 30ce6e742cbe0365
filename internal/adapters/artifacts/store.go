package artifacts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/farm-deploy/internal/domain"
	"github.com/trebuchet-org/farm-deploy/internal/domain/config"
	"github.com/trebuchet-org/farm-deploy/internal/domain/models"
)

// Artifact is a compiled template: ABI, creation bytecode and the source it came from
type Artifact struct {
	Name       string
	SourcePath string // e.g. "src/FakeERC20.sol", as the compiler saw it
	Path       string // artifact file on disk
	Meta       *bind.MetaData
}

// ABI returns the parsed contract ABI
func (a *Artifact) ABI() (*abi.ABI, error) {
	return a.Meta.ParseABI()
}

// Bytecode returns the creation bytecode
func (a *Artifact) Bytecode() ([]byte, error) {
	if strings.Contains(a.Meta.Bin, "__$") {
		return nil, fmt.Errorf("artifact %s has unlinked library references", a.Name)
	}
	code, err := hexutil.Decode(a.Meta.Bin)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode in %s: %w", a.Path, err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("artifact %s has no creation bytecode (abstract contract or interface?)", a.Name)
	}
	return code, nil
}

// EncodeConstructor ABI-encodes constructor arguments
func (a *Artifact) EncodeConstructor(args ...any) ([]byte, error) {
	parsed, err := a.ABI()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s ABI: %w", a.Name, err)
	}
	encoded, err := parsed.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s constructor arguments: %w", a.Name, err)
	}
	return encoded, nil
}

// DeployData returns creation bytecode followed by the encoded constructor arguments
func (a *Artifact) DeployData(args ...any) ([]byte, error) {
	code, err := a.Bytecode()
	if err != nil {
		return nil, err
	}
	encoded, err := a.EncodeConstructor(args...)
	if err != nil {
		return nil, err
	}
	return append(code, encoded...), nil
}

// rawArtifact covers both Foundry (out/) and Hardhat (artifacts/) layouts
type rawArtifact struct {
	ABI        json.RawMessage `json:"abi"`
	Bytecode   json.RawMessage `json:"bytecode"`
	SourceName string          `json:"sourceName"`
	Metadata   struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

// Store locates and caches compiled artifacts under a build output directory
type Store struct {
	root  string
	mu    sync.Mutex
	cache map[string]*Artifact
}

// NewStore creates an artifact store rooted at the configured artifacts directory
func NewStore(cfg *config.RuntimeConfig) *Store {
	return NewStoreAt(cfg.ArtifactsDir)
}

// NewStoreAt creates an artifact store rooted at dir
func NewStoreAt(dir string) *Store {
	return &Store{
		root:  dir,
		cache: make(map[string]*Artifact),
	}
}

// Get returns the artifact for a template
func (s *Store) Get(template models.ResourceTemplate) (*Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.cache[template.Name]; ok {
		return a, nil
	}

	path, err := s.find(template.Name)
	if err != nil {
		return nil, err
	}

	a, err := load(template.Name, path)
	if err != nil {
		return nil, err
	}
	s.cache[template.Name] = a
	return a, nil
}

// find walks the output directory for <Name>.json, preferring <Name>.sol/<Name>.json
func (s *Store) find(name string) (string, error) {
	var matches []string
	target := name + ".json"

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == target {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s (output directory %s does not exist, build the contracts first)", domain.ErrArtifactNotFound, name, s.root)
		}
		return "", fmt.Errorf("failed to scan %s: %w", s.root, err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s under %s", domain.ErrArtifactNotFound, name, s.root)
	}

	sort.Strings(matches)
	for _, m := range matches {
		if filepath.Base(filepath.Dir(m)) == name+".sol" {
			return m, nil
		}
	}
	return matches[0], nil
}

func load(name, path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if len(raw.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi", path)
	}

	bin, err := parseBytecode(raw.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}

	source := raw.SourceName
	for file, contract := range raw.Metadata.Settings.CompilationTarget {
		if contract == name {
			source = file
		}
	}

	return &Artifact{
		Name:       name,
		SourcePath: source,
		Path:       path,
		Meta:       newMeta(string(raw.ABI), bin),
	}, nil
}

func newMeta(abiJSON, bin string) *bind.MetaData {
	return &bind.MetaData{
		ABI: abiJSON,
		Bin: bin,
	}
}

// parseBytecode accepts Hardhat's "0x..." string and Foundry's {"object": "0x..."}
func parseBytecode(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing bytecode")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ensureHexPrefix(s), nil
	}

	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("unrecognized bytecode format: %w", err)
	}
	return ensureHexPrefix(obj.Object), nil
}

func ensureHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") {
		return s
	}
	return "0x" + s
}
