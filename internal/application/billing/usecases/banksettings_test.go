package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBankSettings_FirstWriteCreatesRecord(t *testing.T) {
	ctx := context.Background()
	repo := &fakeBankSettingsRepo{}
	get := NewGetBankSettingsUseCase(repo, testLogger())
	update := NewUpdateBankSettingsUseCase(repo, testLogger())

	// Nothing configured yet.
	settings, err := get.Execute(ctx)
	require.NoError(t, err)
	assert.Nil(t, settings)

	saved, err := update.Execute(ctx, UpdateBankSettingsCommand{
		BankName:      strPtr("First National"),
		AccountHolder: strPtr("Acme Ltd"),
		IBAN:          strPtr("DE89370400440532013000"),
	})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID())
	assert.Equal(t, "First National", saved.BankName())

	settings, err = get.Execute(ctx)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, "DE89370400440532013000", settings.IBAN())
}

func TestBankSettings_PartialUpdateKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	repo := &fakeBankSettingsRepo{}
	update := NewUpdateBankSettingsUseCase(repo, testLogger())

	_, err := update.Execute(ctx, UpdateBankSettingsCommand{
		BankName:      strPtr("First National"),
		AccountNumber: strPtr("12345678"),
	})
	require.NoError(t, err)

	saved, err := update.Execute(ctx, UpdateBankSettingsCommand{
		Branch: strPtr("Main Street"),
	})
	require.NoError(t, err)

	assert.Equal(t, "First National", saved.BankName())
	assert.Equal(t, "12345678", saved.AccountNumber())
	assert.Equal(t, "Main Street", saved.Branch())
}
