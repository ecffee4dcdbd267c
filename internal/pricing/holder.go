package pricing

import (
	"encoding/json"
	"os"
	"sync/atomic"

	"github.com/agriwelfare/stockclaims/internal/config"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// defaultDocument is the priced configuration used when no document is
// mounted. A mounted prices.json always wins.
const defaultDocument = `{
  "review":   { "beef": 522, "dairy": 372, "pigs": 557, "sheep": 436 },
  "followUp": {
    "beef":  { "positive": 837,  "negative": { "noPiHunt": 215, "yesPiHunt": 837 } },
    "dairy": { "positive": 1714, "negative": { "noPiHunt": 215, "yesPiHunt": 1714 } },
    "pigs": 923,
    "sheep": 639
  }
}`

// Holder keeps the current priced configuration behind an atomic.Value and
// hot-reloads it when the mounted document changes. A reload that fails
// validation is ignored; the previous table stays live.
type Holder struct {
	log     *zap.Logger
	current atomic.Value // holds Table
}

func NewHolder(cfg config.Config, log *zap.Logger) (*Holder, error) {
	holder := &Holder{log: log.Named("pricing.holder")}

	v := viper.New()
	v.SetConfigName("prices")
	v.SetConfigType("json")
	v.AddConfigPath(cfg.PricesConfigDir)
	v.AddConfigPath("/etc/stockclaims")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		table, err := decodeDocument([]byte(defaultDocument))
		if err != nil {
			return nil, err
		}
		holder.current.Store(table)
		return holder, nil
	}

	table, err := loadDocument(v.ConfigFileUsed())
	if err != nil {
		return nil, err
	}
	holder.current.Store(table)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := loadDocument(v.ConfigFileUsed())
		if err != nil {
			holder.log.Warn("priced configuration reload rejected",
				zap.String("file", e.Name),
				zap.Error(err))
			return
		}
		holder.current.Store(updated)
		holder.log.Info("priced configuration reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// Table returns the current priced configuration.
func (h *Holder) Table() Table {
	return h.current.Load().(Table)
}

func loadDocument(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	return decodeDocument(raw)
}

// The document is decoded with encoding/json rather than viper's mapper so
// amounts land in decimal.Decimal without float round-trips.
func decodeDocument(raw []byte) (Table, error) {
	var table Table
	if err := json.Unmarshal(raw, &table); err != nil {
		return Table{}, err
	}
	if err := table.Validate(); err != nil {
		return Table{}, err
	}
	return table, nil
}
