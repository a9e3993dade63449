package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/agro-backend/internal/cache"
	"github.com/deppfellow/agro-backend/internal/config"
	"github.com/deppfellow/agro-backend/internal/lib/brfmt"
	"github.com/rs/zerolog"
)

// Endereco is an address resolved from a CEP.
type Endereco struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	IBGE        string `json:"ibge"`
	DDD         string `json:"ddd"`
}

// viaCEPResponse mirrors ViaCEP. "erro" has been both a boolean and the
// string "true" over time.
type viaCEPResponse struct {
	Endereco
	Erro any `json:"erro"`
}

func (r *viaCEPResponse) failed() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}

// CEPClient resolves postal codes through ViaCEP.
type CEPClient struct {
	baseURL  string
	upstream *upstream
}

func NewCEPClient(cfg *config.LookupConfig, c *cache.Cache, logger *zerolog.Logger) *CEPClient {
	return &CEPClient{
		baseURL:  strings.TrimRight(cfg.ViaCEPBaseURL, "/"),
		upstream: newUpstream("viacep", cfg, c, logger),
	}
}

// Lookup resolves cep. Masked input is accepted. Anything that is not eight
// digits returns nil, nil without calling ViaCEP.
func (c *CEPClient) Lookup(ctx context.Context, cep string) (*Endereco, error) {
	digits := brfmt.OnlyDigits(cep)
	if len(digits) != brfmt.CEPLength {
		return nil, nil
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, digits)

	res, err := fetch(ctx, c.upstream, digits, url, func(r *viaCEPResponse) error {
		if r.failed() {
			return ErrNotFound
		}
		if r.CEP == "" || r.Localidade == "" || r.UF == "" {
			return fmt.Errorf("%w: viacep: missing cep, localidade or uf", ErrInvalidResponse)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	endereco := res.Endereco
	endereco.CEP = brfmt.FormatCEP(endereco.CEP)
	return &endereco, nil
}
