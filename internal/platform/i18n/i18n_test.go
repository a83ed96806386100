package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizer_English(t *testing.T) {
	loc := New("EN")
	require.Equal(t, English, loc.Lang())
	assert.Equal(t, "ltr", loc.Dir())
	assert.Equal(t, "Delete this order?", loc.T(ConfirmDelete))
	assert.Equal(t, "Imported 3 rows.", loc.T(ImportedRows, 3))
}

func TestLocalizer_Arabic(t *testing.T) {
	loc := New("ar")
	assert.Equal(t, "rtl", loc.Dir())
	assert.Equal(t, "هل تريد مسح جميع الطلبات؟", loc.T(ConfirmClear))
	imported := loc.T(ImportedRows, 2)
	assert.Contains(t, imported, "تم استيراد")
	assert.Contains(t, imported, "صف.")
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	loc := New("fr")
	require.Equal(t, English, loc.Lang())
	assert.Equal(t, "DentalLab CRM", loc.T(Title))
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range messages[English] {
		_, ok := messages[Arabic][key]
		assert.True(t, ok, key)
	}
	assert.Len(t, messages[Arabic], len(messages[English]))
}

func TestSupported(t *testing.T) {
	require.Equal(t, []string{"en", "ar"}, Supported())
}
