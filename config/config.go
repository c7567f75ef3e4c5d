package config

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"pricemachine/importer"
	"pricemachine/pricelist"
)

// KeyDelimiter separates nested config keys. Raw price list headers such as
// "цена, руб." contain dots, so viper's default "." cannot be used.
const KeyDelimiter = "::"

const (
	KeyPricesDirectory  = "prices::directory"
	KeyPricesExtensions = "prices::extensions"
	KeyPricesMarker     = "prices::marker"
	KeyColumns          = "columns"
	KeyExportPath       = "export::path"
	KeyExportFormat     = "export::format"
	KeyExportTitle      = "export::title"
	KeyLogLevel         = "log::level"
	KeyLogFormat        = "log::format"
)

var active = newViper()

type Config struct {
	Prices  PricesConfig      `mapstructure:"prices"`
	Headers map[string]string `mapstructure:"headers" validate:"required,min=1"`
	Columns map[string]string `mapstructure:"columns"`
	Export  ExportConfig      `mapstructure:"export"`
	Log     LogConfig         `mapstructure:"log"`
}

type PricesConfig struct {
	Directory  string   `mapstructure:"directory" validate:"required"`
	Extensions []string `mapstructure:"extensions" validate:"required,min=1,dive,required,startswith=."`
	Marker     string   `mapstructure:"marker" validate:"required"`
}

type ExportConfig struct {
	Path   string `mapstructure:"path" validate:"required"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=html csv excel xlsx sqlite"`
	Title  string `mapstructure:"title"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// DefaultHeaders is the raw header table of the supported price list layouts.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"название":     "name",
		"продукт":      "name",
		"товар":        "name",
		"наименование": "name",
		"цена":         "price",
		"розница":      "price",
		"фасовка":      "weight",
		"масса":        "weight",
		"вес":          "weight",
	}
}

func DefaultColumns() map[string]string {
	labels := pricelist.DefaultLabels()
	columns := make(map[string]string, len(labels))
	for field, label := range labels {
		columns[string(field)] = label
	}
	return columns
}

// Viper returns the instance the config file and environment are read into.
func Viper() *viper.Viper {
	return active
}

// Reset replaces the active instance with one that only carries the defaults.
func Reset() {
	active = newViper()
	setDefaults(active)
}

// EnvKeyReplacer maps nested keys to environment variable names, so
// prices::directory is read from PRICEMACHINE_PRICES_DIRECTORY.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(KeyDelimiter, "_")
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(active)
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(active)
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := newViper()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# pricemachine configuration
prices:
  directory: "prices"
  extensions: [".csv"]
  marker: "price"

# raw column header -> canonical field (name, price, weight). Case, spaces,
# "_" and "-" are ignored. Entries extend the built-in table below; list a
# built-in spelling with another field to retarget it.
headers:
  название: name
  продукт: name
  товар: name
  наименование: name
  цена: price
  розница: price
  фасовка: weight
  масса: weight
  вес: weight

# display labels of the canonical columns
columns:
  ordinal: "№"
  name: "название"
  price: "цена"
  weight: "вес"
  source_file: "файл"
  price_per_weight: "цена за кг."

export:
  path: "output.html"
  format: ""
  title: "Позиции продуктов"

log:
  level: "info"
  format: "text"
`
}

// ExampleYAMLFor returns the template with prices.directory set to directory.
func ExampleYAMLFor(directory string) string {
	if strings.TrimSpace(directory) == "" {
		return ExampleYAML()
	}
	return strings.Replace(ExampleYAML(), `directory: "prices"`, "directory: "+strconv.Quote(directory), 1)
}

// Labels returns the display labels, falling back to the defaults for any
// column that is not configured.
func (c Config) Labels() pricelist.Labels {
	labels := pricelist.DefaultLabels()
	for key, label := range c.Columns {
		if strings.TrimSpace(label) == "" {
			continue
		}
		labels[pricelist.Field(strings.ToLower(strings.TrimSpace(key)))] = label
	}
	return labels
}

func newViper() *viper.Viper {
	return viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Headers = mergeHeaders(DefaultHeaders(), cfg.Headers)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	cfg.Export.Format = strings.ToLower(strings.TrimSpace(cfg.Export.Format))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateHeaders(cfg.Headers); err != nil {
		return nil, err
	}
	if _, err := importer.NewHeaderMapper(cfg.Headers); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateColumns(cfg.Columns); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPricesDirectory, "prices")
	v.SetDefault(KeyPricesExtensions, []string{".csv"})
	v.SetDefault(KeyPricesMarker, "price")
	v.SetDefault(KeyColumns, DefaultColumns())
	v.SetDefault(KeyExportPath, "output.html")
	v.SetDefault(KeyExportFormat, "")
	v.SetDefault(KeyExportTitle, "Позиции продуктов")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

// mergeHeaders lays configured over defaults. A configured header replaces
// every default spelling with the same comparison key.
func mergeHeaders(defaults, configured map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(configured))
	overridden := make(map[string]bool, len(configured))
	for raw := range configured {
		overridden[importer.NormalizeHeader(raw)] = true
	}
	for raw, field := range defaults {
		if !overridden[importer.NormalizeHeader(raw)] {
			merged[raw] = field
		}
	}
	for raw, field := range configured {
		merged[raw] = field
	}
	return merged
}

func validateHeaders(headers map[string]string) error {
	raws := make([]string, 0, len(headers))
	for raw := range headers {
		raws = append(raws, raw)
	}
	sort.Strings(raws)

	for _, raw := range raws {
		if strings.TrimSpace(raw) == "" {
			return fmt.Errorf("validation failed: headers contains an empty raw header")
		}
		field, ok := pricelist.ParseField(headers[raw])
		if !ok || !pricelist.IsInputField(field) {
			return fmt.Errorf(
				"validation failed: headers[%q] = %q is not supported (valid: name, price, weight)",
				raw,
				headers[raw],
			)
		}
	}
	return nil
}

func validateColumns(columns map[string]string) error {
	for key := range columns {
		normalized := strings.ToLower(strings.TrimSpace(key))
		if pricelist.Field(normalized) == pricelist.OrdinalKey {
			continue
		}
		if _, ok := pricelist.ParseField(normalized); !ok {
			return fmt.Errorf("validation failed: columns.%s is not a canonical field", key)
		}
	}
	return nil
}
