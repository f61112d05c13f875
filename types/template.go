package types

import (
	"encoding/json"

	z "github.com/Oudwins/zog"

	vaulterrors "github.com/sonr-io/vaultcore/errors"
)

// Default relative timelocks, in blocks. Savings favors security (about one week),
// spending favors convenience (about one day).
const (
	DefaultSavingsDelay  uint32 = 1008
	DefaultSpendingDelay uint32 = 144
)

// Stable template identifiers, persisted alongside vault metadata.
const (
	SavingsTemplateID  = "savings_v1"
	SpendingTemplateID = "spending_v1"
	CustomTemplateID   = "custom_v1"
)

// Template type discriminators used in the JSON form.
const (
	TemplateTypeSavings  = "savings"
	TemplateTypeSpending = "spending"
	TemplateTypeCustom   = "custom"
)

// VaultTemplate is a spending policy. The set of implementations is closed:
// SavingsTemplate, SpendingTemplate and CustomTemplate.
type VaultTemplate interface {
	// DelayBlocks returns the relative timelock of the default spend path.
	DelayBlocks() uint32
	// TemplateID returns the stable identifier of the policy.
	TemplateID() string
	// Type returns the JSON discriminator.
	Type() string

	isVaultTemplate()
}

// SavingsTemplate is the long-delay policy.
type SavingsTemplate struct {
	Delay uint32
}

// SpendingTemplate is the short-delay policy.
type SpendingTemplate struct {
	Delay uint32
}

// CustomTemplate carries a caller chosen delay and recovery mechanism. The delay is not
// bounds checked here; policy limits belong to the vault creation flow.
type CustomTemplate struct {
	Delay    uint32
	Recovery RecoveryType
}

// Savings returns the canonical savings template.
func Savings() SavingsTemplate {
	return SavingsTemplate{Delay: DefaultSavingsDelay}
}

// Spending returns the canonical spending template.
func Spending() SpendingTemplate {
	return SpendingTemplate{Delay: DefaultSpendingDelay}
}

// Custom returns a template with an explicit delay and recovery type.
func Custom(delay uint32, recovery RecoveryType) CustomTemplate {
	return CustomTemplate{Delay: delay, Recovery: recovery}
}

func (t SavingsTemplate) DelayBlocks() uint32 { return t.Delay }
func (t SavingsTemplate) TemplateID() string  { return SavingsTemplateID }
func (t SavingsTemplate) Type() string        { return TemplateTypeSavings }
func (SavingsTemplate) isVaultTemplate()      {}

func (t SpendingTemplate) DelayBlocks() uint32 { return t.Delay }
func (t SpendingTemplate) TemplateID() string  { return SpendingTemplateID }
func (t SpendingTemplate) Type() string        { return TemplateTypeSpending }
func (SpendingTemplate) isVaultTemplate()      {}

func (t CustomTemplate) DelayBlocks() uint32 { return t.Delay }
func (t CustomTemplate) TemplateID() string  { return CustomTemplateID }
func (t CustomTemplate) Type() string        { return TemplateTypeCustom }
func (CustomTemplate) isVaultTemplate()      {}

type templateJSON struct {
	Type         string        `json:"type"`
	DelayBlocks  *uint32       `json:"delay_blocks,omitempty"`
	RecoveryType *RecoveryType `json:"recovery_type,omitempty"`
}

func (t SavingsTemplate) MarshalJSON() ([]byte, error) {
	return json.Marshal(templateJSON{Type: TemplateTypeSavings, DelayBlocks: &t.Delay})
}

func (t SpendingTemplate) MarshalJSON() ([]byte, error) {
	return json.Marshal(templateJSON{Type: TemplateTypeSpending, DelayBlocks: &t.Delay})
}

func (t CustomTemplate) MarshalJSON() ([]byte, error) {
	return json.Marshal(templateJSON{
		Type:         TemplateTypeCustom,
		DelayBlocks:  &t.Delay,
		RecoveryType: &t.Recovery,
	})
}

// templateTypeSchema validates the discriminator before the variant fields are read.
var templateTypeSchema = z.Struct(z.Shape{
	"type": z.String().Required().OneOf(
		[]string{TemplateTypeSavings, TemplateTypeSpending, TemplateTypeCustom},
		z.Message("unknown vault template type"),
	),
})

// UnmarshalTemplate decodes the tagged JSON form of a template. Savings and spending
// templates without delay_blocks take their default delay; custom templates require
// both delay_blocks and recovery_type.
func UnmarshalTemplate(data []byte) (VaultTemplate, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, vaulterrors.Serialization("%s", err.Error())
	}

	var tagged struct {
		Type string
	}
	if errs := templateTypeSchema.Parse(raw, &tagged); len(errs) > 0 {
		return nil, vaulterrors.InvalidInput("unknown vault template type: %v", raw["type"])
	}

	var fields templateJSON
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, vaulterrors.From(err)
	}

	switch tagged.Type {
	case TemplateTypeSavings:
		t := Savings()
		if fields.DelayBlocks != nil {
			t.Delay = *fields.DelayBlocks
		}
		return t, nil
	case TemplateTypeSpending:
		t := Spending()
		if fields.DelayBlocks != nil {
			t.Delay = *fields.DelayBlocks
		}
		return t, nil
	default:
		if fields.DelayBlocks == nil {
			return nil, vaulterrors.InvalidInput("custom template requires delay_blocks")
		}
		if fields.RecoveryType == nil {
			return nil, vaulterrors.InvalidInput("custom template requires recovery_type")
		}
		return Custom(*fields.DelayBlocks, *fields.RecoveryType), nil
	}
}

// TemplateByType returns the canonical template for a savings or spending type name.
func TemplateByType(name string) (VaultTemplate, error) {
	switch name {
	case TemplateTypeSavings:
		return Savings(), nil
	case TemplateTypeSpending:
		return Spending(), nil
	case TemplateTypeCustom:
		return nil, vaulterrors.InvalidInput("custom template requires an explicit delay and recovery type")
	default:
		return nil, vaulterrors.InvalidInput("unknown vault template type: %s", name)
	}
}
