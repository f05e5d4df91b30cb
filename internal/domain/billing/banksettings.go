package billing

import (
	"fmt"
	"time"

	"chatledger/internal/shared/biztime"
)

// BankSettings holds the transfer coordinates shown to users paying a
// manual payment request. A deployment keeps at most one record.
type BankSettings struct {
	id                     uint
	bankName               string
	accountHolder          string
	accountNumber          string
	iban                   string
	swiftBIC               string
	branch                 string
	country                string
	additionalInstructions string
	createdAt              time.Time
	updatedAt              time.Time
}

// NewBankSettings creates an empty record ready for the first admin write.
func NewBankSettings() *BankSettings {
	now := biztime.NowUTC()
	return &BankSettings{
		createdAt: now,
		updatedAt: now,
	}
}

// BankSettingsReconstructParams carries persisted state back into the aggregate.
type BankSettingsReconstructParams struct {
	ID                     uint
	BankName               string
	AccountHolder          string
	AccountNumber          string
	IBAN                   string
	SwiftBIC               string
	Branch                 string
	Country                string
	AdditionalInstructions string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ReconstructBankSettings reconstructs bank settings from persistence.
func ReconstructBankSettings(p BankSettingsReconstructParams) (*BankSettings, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("bank settings ID cannot be zero")
	}

	return &BankSettings{
		id:                     p.ID,
		bankName:               p.BankName,
		accountHolder:          p.AccountHolder,
		accountNumber:          p.AccountNumber,
		iban:                   p.IBAN,
		swiftBIC:               p.SwiftBIC,
		branch:                 p.Branch,
		country:                p.Country,
		additionalInstructions: p.AdditionalInstructions,
		createdAt:              p.CreatedAt,
		updatedAt:              p.UpdatedAt,
	}, nil
}

func (s *BankSettings) ID() uint                       { return s.id }
func (s *BankSettings) BankName() string               { return s.bankName }
func (s *BankSettings) AccountHolder() string          { return s.accountHolder }
func (s *BankSettings) AccountNumber() string          { return s.accountNumber }
func (s *BankSettings) IBAN() string                   { return s.iban }
func (s *BankSettings) SwiftBIC() string               { return s.swiftBIC }
func (s *BankSettings) Branch() string                 { return s.branch }
func (s *BankSettings) Country() string                { return s.country }
func (s *BankSettings) AdditionalInstructions() string { return s.additionalInstructions }
func (s *BankSettings) CreatedAt() time.Time           { return s.createdAt }
func (s *BankSettings) UpdatedAt() time.Time           { return s.updatedAt }

// SetID sets the record ID (only for persistence layer use)
func (s *BankSettings) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("bank settings ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("bank settings ID cannot be zero")
	}
	s.id = id
	return nil
}

// BankSettingsUpdate carries a partial admin edit. Nil fields are left as is.
type BankSettingsUpdate struct {
	BankName               *string
	AccountHolder          *string
	AccountNumber          *string
	IBAN                   *string
	SwiftBIC               *string
	Branch                 *string
	Country                *string
	AdditionalInstructions *string
}

// Apply merges the non-nil fields of the update into the record.
func (s *BankSettings) Apply(u BankSettingsUpdate) {
	if u.BankName != nil {
		s.bankName = *u.BankName
	}
	if u.AccountHolder != nil {
		s.accountHolder = *u.AccountHolder
	}
	if u.AccountNumber != nil {
		s.accountNumber = *u.AccountNumber
	}
	if u.IBAN != nil {
		s.iban = *u.IBAN
	}
	if u.SwiftBIC != nil {
		s.swiftBIC = *u.SwiftBIC
	}
	if u.Branch != nil {
		s.branch = *u.Branch
	}
	if u.Country != nil {
		s.country = *u.Country
	}
	if u.AdditionalInstructions != nil {
		s.additionalInstructions = *u.AdditionalInstructions
	}
	s.updatedAt = biztime.NowUTC()
}
