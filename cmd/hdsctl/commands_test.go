package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-hds-keeper/internal/repair"
	"github.com/MKhiriev/go-hds-keeper/internal/utils"
)

const testSecret = "operator-test-secret"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_MASTER_SECRET", "")
	t.Setenv("COMPLIANCE_SCHEMA_FILE", "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestEncryptDecrypt(t *testing.T) {
	cipherText, err := execute(t, "encrypt", "--secret", testSecret, "--actor", "osteo-1", "Jean Dupont")
	require.NoError(t, err)
	assert.True(t, repair.IsValidFormat(cipherText))

	plain, err := execute(t, "decrypt", "--secret", testSecret, "--actor", "osteo-1", cipherText)
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont", plain)

	_, err = execute(t, "decrypt", "--secret", testSecret, "--actor", "osteo-2", cipherText)
	assert.ErrorContains(t, err, "decryption failed")
}

func TestEncrypt_RequiresActor(t *testing.T) {
	_, err := execute(t, "encrypt", "--secret", testSecret, "value")

	assert.ErrorContains(t, err, "--actor")
}

func TestDecrypt_Repair(t *testing.T) {
	cipherText, err := execute(t, "encrypt", "--secret", testSecret, "--actor", "osteo-1", "allergie pollen")
	require.NoError(t, err)

	iv, blob, _ := strings.Cut(cipherText, ":")
	drifted := iv + "ab:" + blob

	_, err = execute(t, "decrypt", "--secret", testSecret, "--actor", "osteo-1", drifted)
	assert.Error(t, err)

	plain, err := execute(t, "decrypt", "--repair", "--secret", testSecret, "--actor", "osteo-1", drifted)
	require.NoError(t, err)
	assert.Equal(t, "allergie pollen", plain)

	plain, err = execute(t, "decrypt", "--repair", "--secret", testSecret, "--actor", "osteo-1", iv[2:]+":"+blob)
	require.NoError(t, err)
	assert.Equal(t, "allergie pollen", plain)
}

func TestRepair(t *testing.T) {
	cipherText, err := execute(t, "encrypt", "--secret", testSecret, "--actor", "osteo-1", "x")
	require.NoError(t, err)
	iv, blob, _ := strings.Cut(cipherText, ":")

	got, err := execute(t, "repair", iv+"ff:"+blob)
	require.NoError(t, err)
	assert.Equal(t, cipherText, got)

	got, err = execute(t, "repair", cipherText)
	require.NoError(t, err)
	assert.Equal(t, cipherText, got)

	_, err = execute(t, "repair", "plain text")
	assert.ErrorIs(t, err, errNotRepairable)
}

func TestClassify(t *testing.T) {
	out, err := execute(t, "classify", "Jean", repair.DecodingFailedMarker)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "plaintext\tJean", lines[0])
	assert.Equal(t, "error_tagged\t"+repair.DecodingFailedMarker, lines[1])
}

func TestPseudonymize(t *testing.T) {
	first, err := execute(t, "pseudonymize", "--secret", testSecret, "patients", "email", "Jean@Example.fr")
	require.NoError(t, err)
	second, err := execute(t, "pseudonymize", "--secret", testSecret, "patients", "email", "  jean@example.fr ")
	require.NoError(t, err)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)

	other, err := execute(t, "pseudonymize", "--secret", "another-secret", "patients", "email", "jean@example.fr")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestPseudonymize_Rejected(t *testing.T) {
	_, err := execute(t, "pseudonymize", "--secret", testSecret, "patients", "notes", "x")
	assert.ErrorContains(t, err, "not pseudonymized")

	_, err = execute(t, "pseudonymize", "--secret", testSecret, "unknown", "email", "x")
	assert.ErrorContains(t, err, "unknown record type")
}

func TestToken(t *testing.T) {
	signed, err := execute(t, "token", "--issuer", "hds-auth", "--sign-key", "k", "osteo-7")
	require.NoError(t, err)

	token, err := utils.ValidateAndParseJWTToken(signed, "k", "hds-auth")
	require.NoError(t, err)
	assert.Equal(t, "osteo-7", token.ActorID)
}

func TestSealOpen(t *testing.T) {
	const record = `{"id":"p-1","lastName":"Dupont","email":"jean@example.org","city":"Lyon"}`

	doc, err := execute(t, "seal", "--secret", testSecret, "--actor", "osteo-1", "patients", record)
	require.NoError(t, err)

	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &stored))
	assert.Equal(t, "Lyon", stored["city"])
	assert.True(t, repair.IsValidFormat(stored["lastName"].(string)))
	assert.True(t, repair.IsValidFormat(stored["email"].(string)))

	require.IsType(t, map[string]any{}, stored["_hds"])
	meta := stored["_hds"].(map[string]any)
	assert.Equal(t, "hds-1.0", meta["version"])
	assert.Equal(t, "osteo-1", meta["updatedBy"])

	token, err := execute(t, "pseudonymize", "--secret", testSecret, "patients", "email", "jean@example.org")
	require.NoError(t, err)
	require.IsType(t, map[string]any{}, stored["_pseudoIndex"])
	assert.Equal(t, token, stored["_pseudoIndex"].(map[string]any)["email"])

	opened, err := execute(t, "open", "--secret", testSecret, "--actor", "osteo-1", "patients", doc)
	require.NoError(t, err)
	assert.JSONEq(t, record, opened)

	opened, err = execute(t, "open", "--secret", testSecret, "--actor", "osteo-2", "patients", doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p-1","lastName":"Information non disponible","email":"Information non disponible","city":"Lyon"}`, opened)

	opened, err = execute(t, "open", "--edit", "--secret", testSecret, "--actor", "osteo-2", "patients", doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p-1","lastName":"","email":"","city":"Lyon"}`, opened)
}

func TestOpen_LegacyDocument(t *testing.T) {
	opened, err := execute(t, "open", "--secret", testSecret, "--actor", "osteo-1", "patients",
		`{"id":"p-9","lastName":"Martin","_hds":null}`)

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p-9","lastName":"Martin"}`, opened)
}

func TestSealOpen_Errors(t *testing.T) {
	_, err := execute(t, "seal", "--secret", testSecret, "patients", `{}`)
	assert.ErrorIs(t, err, errActorRequired)

	_, err = execute(t, "seal", "--secret", testSecret, "--actor", "osteo-1", "patients", `not json`)
	assert.ErrorContains(t, err, "decode record")

	_, err = execute(t, "seal", "--secret", testSecret, "--actor", "osteo-1", "unknown", `{}`)
	assert.Error(t, err)

	_, err = execute(t, "open", "--secret", testSecret, "--actor", "osteo-1", "patients", `{"_hds":"broken"}`)
	assert.ErrorContains(t, err, "decode stored document")
}
