package models

import (
	"bytes"
	"encoding/json"
)

// ResultMapping maps symbol to decision and serializes keys in first
// insertion order. Setting an existing key replaces its value in place.
type ResultMapping struct {
	keys   []string
	values map[string]StockDecision
}

func NewResultMapping() *ResultMapping {
	return &ResultMapping{values: make(map[string]StockDecision)}
}

func (m *ResultMapping) Set(symbol string, decision StockDecision) {
	if _, ok := m.values[symbol]; !ok {
		m.keys = append(m.keys, symbol)
	}
	m.values[symbol] = decision
}

func (m *ResultMapping) Get(symbol string) (StockDecision, bool) {
	d, ok := m.values[symbol]
	return d, ok
}

func (m *ResultMapping) Len() int {
	return len(m.keys)
}

func (m *ResultMapping) Symbols() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *ResultMapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
