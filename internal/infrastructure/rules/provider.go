// Package rules serves rollover rule data from JSON rule files, one file per
// rule tag, shaped as {exchange: {product: [switch, ...]}}.
package rules

import (
	"encoding/json"
	"os"
	"sort"
	"sync"

	hotrulev1 "github.com/muhammadchandra19/tickstore/internal/domain/hotrule/v1"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

type fileSwitch struct {
	Date     uint32  `json:"date"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	OldClose float64 `json:"oldclose"`
	NewClose float64 `json:"newclose"`
}

// FileProvider implements the rollover rule collaborator over JSON rule
// files loaded at startup.
type FileProvider struct {
	mu       sync.RWMutex
	switches map[string][]hotrulev1.Switch // ruleTag + "/" + commodity
	logger   logger.Interface
}

// NewFileProvider creates an empty provider; call LoadFile per rule tag.
func NewFileProvider(log logger.Interface) *FileProvider {
	return &FileProvider{
		switches: make(map[string][]hotrulev1.Switch),
		logger:   log,
	}
}

// LoadFile loads the switches of one rule tag. A missing file is fine: the
// tag just has no data. A malformed file is an error and leaves previously
// loaded tags intact.
func (p *FileProvider) LoadFile(ruleTag, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		tracer := errors.NewTracer(errors.RuleConfigError).Wrap(err)
		p.logger.Error(tracer, logger.Field{Key: "path", Value: path})
		return tracer
	}

	var root map[string]map[string][]fileSwitch
	if err := json.Unmarshal(data, &root); err != nil {
		tracer := errors.NewTracer(errors.RuleConfigError).Wrap(err)
		p.logger.Error(tracer, logger.Field{Key: "path", Value: path})
		return tracer
	}

	count := 0
	p.mu.Lock()
	for exchg, byProduct := range root {
		for product, list := range byProduct {
			switches := make([]hotrulev1.Switch, 0, len(list))
			for _, sw := range list {
				switches = append(switches, hotrulev1.Switch{
					Date:     sw.Date,
					From:     sw.From,
					To:       sw.To,
					OldClose: sw.OldClose,
					NewClose: sw.NewClose,
				})
			}
			sort.Slice(switches, func(i, j int) bool {
				return switches[i].Date < switches[j].Date
			})
			p.switches[ruleTag+"/"+exchg+"."+product] = switches
			count++
		}
	}
	p.mu.Unlock()

	p.logger.Info("rollover rules loaded",
		logger.Field{Key: "rule", Value: ruleTag},
		logger.Field{Key: "path", Value: path},
		logger.Field{Key: "commodities", Value: count},
	)
	return nil
}

// Switches returns the rollover events of (ruleTag, commodity) in ascending
// date order, nil when unknown.
func (p *FileProvider) Switches(ruleTag, commodity string) []hotrulev1.Switch {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.switches[ruleTag+"/"+commodity]
}
