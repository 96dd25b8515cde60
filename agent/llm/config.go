package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/webroker/concierge/agent/contract"
	openrouterx "github.com/webroker/concierge/pkg/openrouter"
)

type Role string

const (
	RoleConcierge Role = "concierge"
	RoleAdvisory  Role = "advisory"
)

// Config selects models per role on top of shared provider settings. The
// concierge session and the advisory calls may run different models.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	ConciergeModel       string  `envconfig:"CONCIERGE_MODEL" split_words:"true"`
	AdvisoryModel        string  `envconfig:"ADVISORY_MODEL" split_words:"true"`
	ConciergeTemperature float32 `envconfig:"CONCIERGE_TEMPERATURE" split_words:"true" default:"-1"`
	AdvisoryTemperature  float32 `envconfig:"ADVISORY_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: provider api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the provider config for one role, falling back
// to the shared defaults when no role override is set.
func (c Config) OpenRouterFor(role Role) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch role {
	case RoleConcierge:
		if v := strings.TrimSpace(c.ConciergeModel); v != "" {
			modelName = v
		}
		if c.ConciergeTemperature >= 0 {
			temp = c.ConciergeTemperature
		}
	case RoleAdvisory:
		if v := strings.TrimSpace(c.AdvisoryModel); v != "" {
			modelName = v
		}
		if c.AdvisoryTemperature >= 0 {
			temp = c.AdvisoryTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
