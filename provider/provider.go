// Package provider resolves the catalog backend selected in the configuration.
package provider

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/catalog/remote"
	"github.com/yogaland/yogaland/key"
)

const (
	Bundled = "bundled"
	Remote  = "remote"
)

// Provider is a named catalog backend.
type Provider struct {
	ID          string
	Name        string
	Description string
	Create      func() (catalog.Provider, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns every catalog backend.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:          Bundled,
			Name:        "Bundled",
			Description: "Catalog compiled into the binary, streaming public sample media",
			Create: func() (catalog.Provider, error) {
				return catalog.NewBundled()
			},
		},
		{
			ID:          Remote,
			Name:        "Remote",
			Description: "Catalog REST API at " + viper.GetString(key.CatalogURL),
			Create: func() (catalog.Provider, error) {
				return remote.NewFromConfig(), nil
			},
		},
	}
}

// Get finds a backend by id or name.
func Get(name string) (*Provider, bool) {
	return lo.Find(Builtins(), func(p *Provider) bool {
		return strings.EqualFold(p.ID, name) || strings.EqualFold(p.Name, name)
	})
}

// Default creates the backend named by catalog.source.
func Default() (catalog.Provider, error) {
	name := viper.GetString(key.CatalogSource)
	p, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown catalog source %q, available: %s", name, strings.Join(IDs(), ", "))
	}
	return p.Create()
}

// IDs lists the backend ids for completion and help.
func IDs() []string {
	return lo.Map(Builtins(), func(p *Provider, _ int) string { return p.ID })
}
