package factory

import (
	httpprov "dialoq/internal/adapters/translate/httpclient"
	"dialoq/internal/ports"
)

// FromType returns an HTTP-backed provider for the given engine type.
func FromType(providerType, apiKey, baseURL string) (ports.Provider, bool) {
	switch providerType {
	case httpprov.TypeLibreTranslate, httpprov.TypeMyMemory:
		return httpprov.New(providerType, apiKey, baseURL), true
	}
	return nil, false
}
