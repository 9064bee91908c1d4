package envelope

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-hds-keeper/internal/crypto"
	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/repair"
	"github.com/MKhiriev/go-hds-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testActor = "practitioner-1"

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

// mockCipher is a FieldCipher with overridable behaviour.
type mockCipher struct {
	encryptFn func(value any, userID string) (string, error)
	decryptFn func(cipherText, userID string) (crypto.DecryptResult, error)
}

func (m *mockCipher) EncryptField(value any, userID string) (string, error) {
	return m.encryptFn(value, userID)
}

func (m *mockCipher) DecryptField(cipherText, userID string) (crypto.DecryptResult, error) {
	return m.decryptFn(cipherText, userID)
}

func newTestEnvelope(t *testing.T, cipher crypto.FieldCipher) *envelope {
	t.Helper()
	keys := crypto.NewKeyStore("envelope-test-secret")
	if cipher == nil {
		cipher = crypto.NewFieldCipher(keys, logger.Nop())
	}

	env, err := NewEnvelope(cipher, keys, DefaultSchema(), logger.Nop())
	require.NoError(t, err)

	e := env.(*envelope)
	e.now = func() time.Time { return fixedNow }
	return e
}

func patient() models.Record {
	return models.Record{
		"id":        "p-1",
		"firstName": "Jean",
		"lastName":  "Dupont",
		"email":     "Jean.Dupont@example.org ",
		"phone":     "",
		"address":   map[string]any{"street": "1 rue de la Paix", "city": "Paris"},
		"notes":     "Motif: douleurs lombaires depuis trois semaines",
		"active":    true,
	}
}

func TestPrepareForStorage(t *testing.T) {
	e := newTestEnvelope(t, nil)
	record := patient()

	stored, err := e.PrepareForStorage(record, "patients", testActor)
	require.NoError(t, err)

	// input untouched
	assert.Equal(t, "Jean", record["firstName"])

	for _, field := range []string{"firstName", "lastName", "email", "address", "notes"} {
		value, ok := stored.Payload[field].(string)
		require.True(t, ok, field)
		assert.True(t, repair.IsValidFormat(value), field)
	}
	assert.Equal(t, "", stored.Payload["phone"])
	assert.Equal(t, "p-1", stored.Payload["id"])
	assert.Equal(t, true, stored.Payload["active"])

	require.NotNil(t, stored.Metadata)
	assert.Equal(t, ComplianceVersion, stored.Metadata.Version)
	assert.ElementsMatch(t, []string{"firstName", "lastName", "email", "address", "notes"}, stored.Metadata.EncryptedFields)
	assert.Equal(t, []string{"email", "lastName"}, stored.Metadata.PseudonymizedFields)
	assert.Equal(t, fixedNow, stored.Metadata.UpdatedAt)
	assert.Equal(t, testActor, stored.Metadata.UpdatedBy)

	assert.Equal(t, e.Pseudonymize("patients", "email", "jean.dupont@example.org"), stored.Pseudonyms["email"])
	assert.Equal(t, e.Pseudonymize("patients", "lastName", "DUPONT"), stored.Pseudonyms["lastName"])
	assert.True(t, e.IsCompliant(stored))
}

func TestPrepareForStorage_Errors(t *testing.T) {
	e := newTestEnvelope(t, nil)

	_, err := e.PrepareForStorage(patient(), "patients", "")
	assert.ErrorIs(t, err, crypto.ErrNoActor)

	_, err = e.PrepareForStorage(patient(), "appointments", testActor)
	assert.ErrorIs(t, err, ErrUnknownRecordType)
}

func TestPrepareForStorage_EncryptionErrorPlaceholder(t *testing.T) {
	e := newTestEnvelope(t, &mockCipher{
		encryptFn: func(value any, _ string) (string, error) {
			if value == "Dupont" {
				return "", crypto.ErrEncryption
			}
			return strings.Repeat("ab", 16) + ":c2VjcmV0c2VjcmV0c2VjcmV0c2VjcmV0c2VjcmV0", nil
		},
	})

	stored, err := e.PrepareForStorage(models.Record{"firstName": "Jean", "lastName": "Dupont"}, "patients", testActor)
	require.NoError(t, err)

	assert.Equal(t, "[ENCRYPTION_ERROR:lastName]", stored.Payload["lastName"])
	assert.Equal(t, []string{"firstName"}, stored.Metadata.EncryptedFields)
	// pseudonyms come from plaintext and survive the encryption failure
	assert.Contains(t, stored.Pseudonyms, "lastName")
}

func TestPrepareForStorage_NoDoubleEncryption(t *testing.T) {
	e := newTestEnvelope(t, nil)

	first, err := e.PrepareForStorage(patient(), "patients", testActor)
	require.NoError(t, err)

	second, err := e.PrepareForStorage(first.Payload, "patients", testActor)
	require.NoError(t, err)

	assert.Equal(t, first.Payload["lastName"], second.Payload["lastName"])
	assert.ElementsMatch(t, first.Metadata.EncryptedFields, second.Metadata.EncryptedFields)
	// ciphertext cannot be indexed
	assert.Empty(t, second.Pseudonyms)
}

func TestPrepareForStorage_DropsReservedKeys(t *testing.T) {
	e := newTestEnvelope(t, nil)

	record := models.Record{
		"firstName":              "Jean",
		models.MetadataKey:       map[string]any{"version": "forged"},
		models.PseudonymIndexKey: map[string]any{"email": "forged"},
	}

	stored, err := e.PrepareForStorage(record, "patients", testActor)
	require.NoError(t, err)
	assert.NotContains(t, stored.Payload, models.MetadataKey)
	assert.NotContains(t, stored.Payload, models.PseudonymIndexKey)
	assert.Equal(t, ComplianceVersion, stored.Metadata.Version)
}

func TestDecryptForDisplay_RoundTrip(t *testing.T) {
	e := newTestEnvelope(t, nil)

	stored, err := e.PrepareForStorage(patient(), "patients", testActor)
	require.NoError(t, err)

	out, err := e.DecryptForDisplay(stored, "patients", testActor)
	require.NoError(t, err)

	assert.Equal(t, "Jean", out["firstName"])
	assert.Equal(t, "Dupont", out["lastName"])
	assert.Equal(t, "Jean.Dupont@example.org ", out["email"])
	assert.Equal(t, map[string]any{"street": "1 rue de la Paix", "city": "Paris"}, out["address"])
	assert.Equal(t, "Motif: douleurs lombaires depuis trois semaines", out["notes"])
	assert.NotContains(t, out, models.MetadataKey)
	assert.NotContains(t, out, models.PseudonymIndexKey)
}

func TestDecryptForDisplay_WrongActor(t *testing.T) {
	e := newTestEnvelope(t, nil)

	stored, err := e.PrepareForStorage(patient(), "patients", testActor)
	require.NoError(t, err)

	out, err := e.DecryptForDisplay(stored, "patients", "someone-else")
	require.NoError(t, err)
	assert.Equal(t, repair.DecodingFailedMarker, out["firstName"])
	assert.Equal(t, repair.DecodingFailedMarker, out["address"])
	assert.Equal(t, "p-1", out["id"])
}

func TestDecryptForDisplay_LegacyValues(t *testing.T) {
	e := newTestEnvelope(t, nil)

	stored := models.StoredRecord{Payload: models.Record{
		"firstName": "Jean",
		"lastName":  "",
		"notes":     "Rendez-vous: 10:30, prévoir radiographie lombaire",
		"email":     "[ENCRYPTION_ERROR:email]",
		"phone":     repair.DecodingFailedMarker,
		"address":   map[string]any{"city": "Lyon"},
	}}

	out, err := e.DecryptForDisplay(stored, "patients", testActor)
	require.NoError(t, err)
	assert.Equal(t, stored.Payload["firstName"], out["firstName"])
	assert.Equal(t, "", out["lastName"])
	assert.Equal(t, stored.Payload["notes"], out["notes"])
	assert.Equal(t, "[ENCRYPTION_ERROR:email]", out["email"])
	assert.Equal(t, repair.DecodingFailedMarker, out["phone"])
	assert.Equal(t, map[string]any{"city": "Lyon"}, out["address"])
}

func TestDecryptForDisplay_RepairsDriftedIV(t *testing.T) {
	e := newTestEnvelope(t, nil)

	cipherText, err := e.cipher.EncryptField("Dupont", testActor)
	require.NoError(t, err)
	iv, blob, _ := strings.Cut(cipherText, crypto.Delimiter)

	tests := []struct {
		name    string
		drifted string
	}{
		{name: "lost trailing byte", drifted: iv[:30] + ":" + blob},
		{name: "lost trailing nibble", drifted: iv[:31] + ":" + blob},
		{name: "lost leading byte", drifted: iv[2:] + ":" + blob},
		{name: "lost leading nibble", drifted: iv[1:] + ":" + blob},
		{name: "over-padded iv", drifted: iv + "00:" + blob},
		{name: "prefixed iv", drifted: "ff" + iv + ":" + blob},
		{name: "uppercase short iv", drifted: strings.ToUpper(iv[:30]) + ":" + blob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, repair.IsValidFormat(tt.drifted))

			out, err := e.DecryptForDisplay(models.StoredRecord{Payload: models.Record{"lastName": tt.drifted}}, "patients", testActor)
			require.NoError(t, err)
			assert.Equal(t, "Dupont", out["lastName"])
		})
	}
}

func TestDecryptForDisplay_RepairsStrippedLeadingZeros(t *testing.T) {
	e := newTestEnvelope(t, nil)

	var cipherText string
	for range 200000 {
		ct, err := e.cipher.EncryptField("Dupont", testActor)
		require.NoError(t, err)
		if strings.HasPrefix(ct, "000") {
			cipherText = ct
			break
		}
	}
	require.NotEmpty(t, cipherText, "no IV with three leading zeros generated")

	drifted := strings.TrimLeft(cipherText, "0")
	require.Less(t, len(drifted), len(cipherText)-2)

	out, err := e.DecryptForDisplay(models.StoredRecord{Payload: models.Record{"lastName": drifted}}, "patients", testActor)
	require.NoError(t, err)
	assert.Equal(t, "Dupont", out["lastName"])
}

func TestDecryptForDisplay_DriftedIVWrongActor(t *testing.T) {
	e := newTestEnvelope(t, nil)

	cipherText, err := e.cipher.EncryptField("Dupont", testActor)
	require.NoError(t, err)
	drifted := cipherText[:30] + cipherText[32:]

	out, err := e.DecryptForDisplay(models.StoredRecord{Payload: models.Record{"lastName": drifted}}, "patients", "someone-else")
	require.NoError(t, err)
	assert.Equal(t, repair.DecodingFailedMarker, out["lastName"])
}

func TestDecryptForDisplay_UnrepairableIsMarked(t *testing.T) {
	e := newTestEnvelope(t, nil)

	tests := []struct {
		name  string
		value string
	}{
		{name: "drifted iv with broken blob", value: strings.Repeat("ab", 10) + ":bm90IGEgcmVhbCBibG9iIGF0IGFsbA=="},
		{name: "valid format wrong tag", value: strings.Repeat("ab", 16) + ":" + strings.Repeat("A", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.DecryptForDisplay(models.StoredRecord{Payload: models.Record{"notes": tt.value}}, "patients", testActor)
			require.NoError(t, err)
			assert.Equal(t, repair.DecodingFailedMarker, out["notes"])
		})
	}
}

func TestDecryptForDisplay_Errors(t *testing.T) {
	e := newTestEnvelope(t, nil)

	_, err := e.DecryptForDisplay(models.StoredRecord{}, "patients", "")
	assert.ErrorIs(t, err, crypto.ErrNoActor)

	_, err = e.DecryptForDisplay(models.StoredRecord{}, "unknown", testActor)
	assert.ErrorIs(t, err, ErrUnknownRecordType)
}

func TestDecryptForDisplay_NormalizesTimestamps(t *testing.T) {
	e := newTestEnvelope(t, nil)
	ts := time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)

	stored, err := e.PrepareForStorage(models.Record{
		"birthDate": ts,
		"createdAt": map[string]any{"seconds": float64(ts.Unix()), "nanoseconds": float64(0)},
		"updatedAt": map[string]any{"_seconds": ts.Unix(), "_nanoseconds": 0},
		"visits":    []any{&ts},
	}, "patients", testActor)
	require.NoError(t, err)

	out, err := e.DecryptForDisplay(stored, "patients", testActor)
	require.NoError(t, err)

	want := "2025-12-24T18:00:00Z"
	assert.Equal(t, want, out["birthDate"])
	assert.Equal(t, want, out["createdAt"])
	assert.Equal(t, want, out["updatedAt"])
	assert.Equal(t, []any{want}, out["visits"])
}

func TestDecryptForDisplay_PropagatesNoActorFromCipher(t *testing.T) {
	e := newTestEnvelope(t, &mockCipher{
		decryptFn: func(string, string) (crypto.DecryptResult, error) {
			return crypto.DecryptResult{}, crypto.ErrNoActor
		},
	})

	stored := models.StoredRecord{Payload: models.Record{"notes": strings.Repeat("ab", 16) + ":" + strings.Repeat("A", 64)}}
	_, err := e.DecryptForDisplay(stored, "patients", testActor)
	assert.True(t, errors.Is(err, crypto.ErrNoActor))
}

func TestIsCompliant(t *testing.T) {
	e := newTestEnvelope(t, nil)
	valid := func() *models.ComplianceMetadata {
		return &models.ComplianceMetadata{
			Version:         ComplianceVersion,
			EncryptedFields: []string{},
			UpdatedAt:       fixedNow,
			UpdatedBy:       testActor,
		}
	}

	tests := []struct {
		name   string
		mutate func(m *models.ComplianceMetadata) *models.ComplianceMetadata
		want   bool
	}{
		{name: "complete", mutate: func(m *models.ComplianceMetadata) *models.ComplianceMetadata { return m }, want: true},
		{name: "missing", mutate: func(*models.ComplianceMetadata) *models.ComplianceMetadata { return nil }, want: false},
		{name: "old version", mutate: func(m *models.ComplianceMetadata) *models.ComplianceMetadata { m.Version = "hds-0.9"; return m }, want: false},
		{name: "no writer", mutate: func(m *models.ComplianceMetadata) *models.ComplianceMetadata { m.UpdatedBy = ""; return m }, want: false},
		{name: "no timestamp", mutate: func(m *models.ComplianceMetadata) *models.ComplianceMetadata { m.UpdatedAt = time.Time{}; return m }, want: false},
		{name: "no field list", mutate: func(m *models.ComplianceMetadata) *models.ComplianceMetadata { m.EncryptedFields = nil; return m }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.IsCompliant(models.StoredRecord{Metadata: tt.mutate(valid())}))
		})
	}
}

func TestPseudonymize(t *testing.T) {
	e := newTestEnvelope(t, nil)

	a := e.Pseudonymize("patients", "email", "  Jean@Example.org")
	assert.Len(t, a, 64)
	assert.Equal(t, a, e.Pseudonymize("patients", "email", "jean@example.org"))
	assert.NotEqual(t, a, e.Pseudonymize("users", "email", "jean@example.org"))
	assert.NotEqual(t, a, e.Pseudonymize("patients", "lastName", "jean@example.org"))
	assert.NotEqual(t, a, e.Pseudonymize("patients", "email", "marie@example.org"))
	assert.NotEqual(t, a, e.Pseudonymize("patients", "email", "jean@example.com"))

	other, err := NewEnvelope(e.cipher, crypto.NewKeyStore("another-secret"), DefaultSchema(), logger.Nop())
	require.NoError(t, err)
	assert.NotEqual(t, a, other.Pseudonymize("patients", "email", "jean@example.org"))
}

func TestPseudonymize_DistinctValues(t *testing.T) {
	e := newTestEnvelope(t, nil)

	tokens := make(map[string]string)
	for i := range 500 {
		value := fmt.Sprintf("patient-%d@example.org", i)
		token := e.Pseudonymize("patients", "email", value)
		if prev, seen := tokens[token]; seen {
			t.Fatalf("%q and %q share pseudonym %s", prev, value, token)
		}
		tokens[token] = value
	}
}
