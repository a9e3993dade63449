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

// Empresa is the registry record of a company.
type Empresa struct {
	CNPJ                string  `json:"cnpj"`
	RazaoSocial         string  `json:"razao_social"`
	NomeFantasia        string  `json:"nome_fantasia"`
	SituacaoCadastral   string  `json:"descricao_situacao_cadastral"`
	CNAEFiscal          int64   `json:"cnae_fiscal"`
	CNAEDescricao       string  `json:"cnae_fiscal_descricao"`
	NaturezaJuridica    string  `json:"natureza_juridica"`
	Logradouro          string  `json:"logradouro"`
	Numero              string  `json:"numero"`
	Complemento         string  `json:"complemento"`
	Bairro              string  `json:"bairro"`
	Municipio           string  `json:"municipio"`
	UF                  string  `json:"uf"`
	CEP                 string  `json:"cep"`
	Telefone            string  `json:"ddd_telefone_1"`
	Email               *string `json:"email"`
	DataInicioAtividade string  `json:"data_inicio_atividade"`
}

// CNPJClient resolves company tax IDs through BrasilAPI.
type CNPJClient struct {
	baseURL  string
	upstream *upstream
}

func NewCNPJClient(cfg *config.LookupConfig, c *cache.Cache, logger *zerolog.Logger) *CNPJClient {
	return &CNPJClient{
		baseURL:  strings.TrimRight(cfg.BrasilAPIBaseURL, "/"),
		upstream: newUpstream("brasilapi", cfg, c, logger),
	}
}

// Lookup resolves cnpj. Masked input is accepted. Anything that is not
// fourteen digits returns nil, nil without calling BrasilAPI.
func (c *CNPJClient) Lookup(ctx context.Context, cnpj string) (*Empresa, error) {
	digits := brfmt.OnlyDigits(cnpj)
	if len(digits) != brfmt.CNPJLength {
		return nil, nil
	}

	url := fmt.Sprintf("%s/api/cnpj/v1/%s", c.baseURL, digits)

	empresa, err := fetch(ctx, c.upstream, digits, url, func(e *Empresa) error {
		if e.CNPJ == "" || e.RazaoSocial == "" {
			return fmt.Errorf("%w: brasilapi: missing cnpj or razao_social", ErrInvalidResponse)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := *empresa
	out.CNPJ = brfmt.FormatCNPJ(out.CNPJ)
	out.CEP = brfmt.FormatCEP(out.CEP)
	return &out, nil
}
