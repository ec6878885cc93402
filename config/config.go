package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/geflip/internal/domain"
	"github.com/vadiminshakov/geflip/internal/services/analyzer"
	"github.com/vadiminshakov/geflip/internal/services/screener"
)

const (
	defaultPricesPath  = "prices.json"
	defaultMappingPath = "mapping.json"
	defaultListen      = ":8080"
	defaultTop         = 25
)

// Config runtime configuration of geflip.
type Config struct {
	Trading     domain.TradingConfig
	TaxRate     float64
	PricesPath  string
	MappingPath string
	Listen      string
	Workers     int
	SortBy      screener.Field
	Top         int
	Members     screener.Membership
}

// ConfigTmp yaml representation of Config. Money and percentages are strings
// so they parse as exact decimals.
type ConfigTmp struct {
	PricesPath             string `yaml:"prices,omitempty"`
	MappingPath            string `yaml:"mapping,omitempty"`
	Listen                 string `yaml:"listen,omitempty"`
	Workers                int    `yaml:"workers,omitempty"`
	SortBy                 string `yaml:"sort_by,omitempty"`
	Top                    int    `yaml:"top,omitempty"`
	Members                string `yaml:"members,omitempty"`
	TaxRateStr             string `yaml:"ge_tax,omitempty"`
	MaxInvestmentStr       string `yaml:"max_investment,omitempty"`
	MinVolumeStr           string `yaml:"min_volume,omitempty"`
	MinROIStr              string `yaml:"min_roi,omitempty"`
	MinProfitPerItemStr    string `yaml:"min_profit_per_item,omitempty"`
	MinSpreadPercentageStr string `yaml:"min_spread_percentage,omitempty"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Trading:     domain.DefaultTradingConfig(),
		TaxRate:     analyzer.DefaultTaxRate,
		PricesPath:  defaultPricesPath,
		MappingPath: defaultMappingPath,
		Listen:      defaultListen,
		SortBy:      screener.FieldConfidence,
		Top:         defaultTop,
		Members:     screener.MembershipAll,
	}
}

// Get parses command line args of a subcommand and returns the configuration
// with the positional args left after the flags. When --config is given the
// yaml file is loaded first and flags set explicitly override it.
func Get(name string, args []string) (Config, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	path := fs.String("config", "", "path to yaml config")
	prices := fs.String("prices", defaultPricesPath, "price snapshot json (prices API /1h format)")
	mapping := fs.String("mapping", defaultMappingPath, "item mapping json (prices API /mapping format)")
	listen := fs.String("listen", defaultListen, "http listen address")
	workers := fs.Int("workers", 0, "concurrent analyses, 0 means number of CPUs")
	sortBy := fs.String("sort", string(screener.FieldConfidence), "sort field: confidence, roi, profit, total_profit, volume, confidence_to_profit, stability")
	top := fs.Int("top", defaultTop, "number of opportunities to show")
	members := fs.String("members", string(screener.MembershipAll), "membership filter: all, members, f2p")
	tax := fs.String("ge-tax", "0.01", "sell-side tax rate")
	maxInvestment := fs.String("max-investment", "2147483647", "maximum coins per trade")
	minVolume := fs.String("min-volume", "1", "minimum total volume")
	minROI := fs.String("min-roi", "1", "minimum ROI percentage")
	minProfit := fs.String("min-profit", "1", "minimum profit per item in coins")
	minSpread := fs.String("min-spread", "1", "minimum spread percentage")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	tmp := ConfigTmp{}
	if *path != "" {
		loaded, err := readYaml(*path)
		if err != nil {
			return Config{}, nil, err
		}
		tmp = loaded
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	override := func(flagName string, dst *string, value string) {
		if set[flagName] || (*path == "" && *dst == "") {
			*dst = value
		}
	}
	override("prices", &tmp.PricesPath, *prices)
	override("mapping", &tmp.MappingPath, *mapping)
	override("listen", &tmp.Listen, *listen)
	override("sort", &tmp.SortBy, *sortBy)
	override("members", &tmp.Members, *members)
	override("ge-tax", &tmp.TaxRateStr, *tax)
	override("max-investment", &tmp.MaxInvestmentStr, *maxInvestment)
	override("min-volume", &tmp.MinVolumeStr, *minVolume)
	override("min-roi", &tmp.MinROIStr, *minROI)
	override("min-profit", &tmp.MinProfitPerItemStr, *minProfit)
	override("min-spread", &tmp.MinSpreadPercentageStr, *minSpread)
	if set["workers"] || *path == "" {
		tmp.Workers = *workers
	}
	if set["top"] || *path == "" {
		tmp.Top = *top
	}

	conf, err := tmp.Parse()
	return conf, fs.Args(), err
}

// Load reads a yaml config file.
func Load(path string) (Config, error) {
	tmp, err := readYaml(path)
	if err != nil {
		return Config{}, err
	}
	return tmp.Parse()
}

func readYaml(path string) (ConfigTmp, error) {
	var tmp ConfigTmp

	f, err := os.ReadFile(path)
	if err != nil {
		return ConfigTmp{}, err
	}
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return ConfigTmp{}, fmt.Errorf("incorrect yaml config %s, error: %w", path, err)
	}
	return tmp, nil
}

// Parse converts the yaml representation into Config, filling defaults for
// empty fields.
func (c ConfigTmp) Parse() (Config, error) {
	conf := Default()

	if c.PricesPath != "" {
		conf.PricesPath = c.PricesPath
	}
	if c.MappingPath != "" {
		conf.MappingPath = c.MappingPath
	}
	if c.Listen != "" {
		conf.Listen = c.Listen
	}
	if c.Workers < 0 {
		return Config{}, fmt.Errorf("incorrect 'workers' param in config (must not be negative), got %d", c.Workers)
	}
	conf.Workers = c.Workers
	if c.Top < 0 {
		return Config{}, fmt.Errorf("incorrect 'top' param in config (must not be negative), got %d", c.Top)
	}
	if c.Top > 0 {
		conf.Top = c.Top
	}

	if c.SortBy != "" {
		field, err := screener.ParseField(strings.ToLower(c.SortBy))
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'sort_by' param in config, error: %w", err)
		}
		conf.SortBy = field
	}
	members, err := screener.ParseMembership(strings.ToLower(c.Members))
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'members' param in config, error: %w", err)
	}
	conf.Members = members

	taxRate, err := parseDecimal("ge_tax", c.TaxRateStr, decimal.NewFromFloat(analyzer.DefaultTaxRate))
	if err != nil {
		return Config{}, err
	}
	if taxRate.IsNegative() || taxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return Config{}, fmt.Errorf("incorrect 'ge_tax' param in config (must be in [0, 1)), got %s", taxRate.String())
	}
	conf.TaxRate = taxRate.InexactFloat64()

	defaults := domain.DefaultTradingConfig()
	maxInvestment, err := parseDecimal("max_investment", c.MaxInvestmentStr, decimal.NewFromFloat(defaults.MaxInvestment))
	if err != nil {
		return Config{}, err
	}
	if !maxInvestment.IsPositive() {
		return Config{}, fmt.Errorf("incorrect 'max_investment' param in config (must be positive), got %s", maxInvestment.String())
	}

	thresholds := []struct {
		name  string
		value string
		def   float64
		dst   *float64
	}{
		{"min_volume", c.MinVolumeStr, defaults.MinVolume, &conf.Trading.MinVolume},
		{"min_roi", c.MinROIStr, defaults.MinROI, &conf.Trading.MinROI},
		{"min_profit_per_item", c.MinProfitPerItemStr, defaults.MinProfitPerItem, &conf.Trading.MinProfitPerItem},
		{"min_spread_percentage", c.MinSpreadPercentageStr, defaults.MinSpreadPercentage, &conf.Trading.MinSpreadPercentage},
	}
	for _, th := range thresholds {
		d, err := parseDecimal(th.name, th.value, decimal.NewFromFloat(th.def))
		if err != nil {
			return Config{}, err
		}
		*th.dst = d.InexactFloat64()
	}
	conf.Trading.MaxInvestment = maxInvestment.InexactFloat64()

	return conf, nil
}

func parseDecimal(name, value string, def decimal.Decimal) (decimal.Decimal, error) {
	if value == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("incorrect '%s' param in config (must be a decimal), error: %w", name, err)
	}
	return d, nil
}

// Tmp converts Config back into its yaml representation.
func (c Config) Tmp() ConfigTmp {
	return ConfigTmp{
		PricesPath:             c.PricesPath,
		MappingPath:            c.MappingPath,
		Listen:                 c.Listen,
		Workers:                c.Workers,
		SortBy:                 string(c.SortBy),
		Top:                    c.Top,
		Members:                string(c.Members),
		TaxRateStr:             decimal.NewFromFloat(c.TaxRate).String(),
		MaxInvestmentStr:       decimal.NewFromFloat(c.Trading.MaxInvestment).String(),
		MinVolumeStr:           decimal.NewFromFloat(c.Trading.MinVolume).String(),
		MinROIStr:              decimal.NewFromFloat(c.Trading.MinROI).String(),
		MinProfitPerItemStr:    decimal.NewFromFloat(c.Trading.MinProfitPerItem).String(),
		MinSpreadPercentageStr: decimal.NewFromFloat(c.Trading.MinSpreadPercentage).String(),
	}
}
