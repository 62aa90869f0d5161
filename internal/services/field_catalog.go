package services

import (
	"strings"
)

type KnownField struct {
	Key        string `yaml:"key"`
	ShortLabel string `yaml:"short"`
	LongLabel  string `yaml:"long"`
}

// FieldCatalog is the priority-ordered list of fields with curated labels.
// Earlier entries win the limited series slots on small screens.
type FieldCatalog struct {
	fields []KnownField
	index  map[string]int
}

func DefaultKnownFields() []KnownField {
	return []KnownField{
		{Key: "volume", ShortLabel: "Volume", LongLabel: "Transaction volume"},
		{Key: "value", ShortLabel: "Value (£m)", LongLabel: "Transaction value (£m)"},
		{Key: "count", ShortLabel: "Count", LongLabel: "Transaction count"},
		{Key: "users", ShortLabel: "Users", LongLabel: "Active users"},
		{Key: "revenue", ShortLabel: "Revenue", LongLabel: "Revenue (£m)"},
		{Key: "transactions", ShortLabel: "Transactions", LongLabel: "Transactions processed"},
		{Key: "fees", ShortLabel: "Fees (£m)", LongLabel: "Processing fees (£m)"},
		{Key: "chargebacks", ShortLabel: "Chargebacks", LongLabel: "Chargeback count"},
		{Key: "merchants", ShortLabel: "Merchants", LongLabel: "Active merchants"},
	}
}

func NewFieldCatalog(fields ...KnownField) *FieldCatalog {
	catalog := &FieldCatalog{index: map[string]int{}}
	catalog.Extend(fields...)
	return catalog
}

func DefaultFieldCatalog() *FieldCatalog {
	return NewFieldCatalog(DefaultKnownFields()...)
}

// Extend appends domain-specific fields after the built-in ones. Entries with an
// existing key replace that key's labels without changing its priority.
func (catalog *FieldCatalog) Extend(fields ...KnownField) {
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" || key == "name" {
			continue
		}
		field.Key = key
		if field.LongLabel == "" {
			field.LongLabel = HumanizeFieldKey(key)
		}
		if field.ShortLabel == "" {
			field.ShortLabel = field.LongLabel
		}
		if position, ok := catalog.index[key]; ok {
			catalog.fields[position] = field
			continue
		}
		catalog.index[key] = len(catalog.fields)
		catalog.fields = append(catalog.fields, field)
	}
}

func (catalog *FieldCatalog) Lookup(key string) (KnownField, bool) {
	position, ok := catalog.index[key]
	if !ok {
		return KnownField{}, false
	}
	return catalog.fields[position], true
}

func (catalog *FieldCatalog) Fields() []KnownField {
	result := make([]KnownField, len(catalog.fields))
	copy(result, catalog.fields)
	return result
}
