package pack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
)

// IndexAsset records one processed asset and the category definition it
// came from.
type IndexAsset struct {
	_        struct{} `cbor:",toarray"`
	Path     string
	Category string
}

// Index is the compiled list of every asset a pack carries a replacement
// for. It is what the flat matching strategy is built from.
type Index struct {
	Pack   string
	Assets []IndexAsset
}

// References returns the asset paths of the index, in order.
func (i *Index) References() []string {
	references := make([]string, 0, len(i.Assets))
	for _, asset := range i.Assets {
		references = append(references, asset.Path)
	}
	return references
}

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

var Missing = fmt.Errorf("index missing")

type FSStore string

func (f FSStore) getPath(key string) string {
	return filepath.Join(string(f), key)
}

func (f FSStore) Get(ctx context.Context, key string) ([]byte, error) {
	target := f.getPath(key)

	if _, err := os.Stat(target); os.IsNotExist(err) {
		return nil, Missing
	}

	return os.ReadFile(target)
}

func (f FSStore) Set(ctx context.Context, key string, data []byte) error {
	target := f.getPath(key)

	err := os.MkdirAll(filepath.Dir(target), 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(target, data, 0644)
}

func indexKey(pack string) string {
	return fmt.Sprintf("%s.index", pack)
}

// SaveIndex serializes a compiled index into the store.
func SaveIndex(ctx context.Context, store Store, index *Index) error {
	data, err := cbor.Marshal(index)
	if err != nil {
		return err
	}

	return store.Set(ctx, indexKey(index.Pack), data)
}

// LoadIndex reads a compiled index back from the store.
func LoadIndex(ctx context.Context, store Store, pack string) (*Index, error) {
	data, err := store.Get(ctx, indexKey(pack))
	if err != nil {
		return nil, err
	}

	index := Index{}
	err = cbor.Unmarshal(data, &index)
	if err != nil {
		return nil, err
	}

	return &index, nil
}
