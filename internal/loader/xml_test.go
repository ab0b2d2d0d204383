package loader_test

import (
	"testing"

	"finadvisor/internal/loader"
	"finadvisor/internal/logging"
	"finadvisor/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const camtSample = `<?xml version="1.0" encoding="UTF-8"?>
<Document>
  <BkToCstmrStmt>
    <Stmt>
      <Id>STMT-2024-03</Id>
      <Ntry>
        <Amt Ccy="EUR">2000.00</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <BookgDt><Dt>2024-03-01</Dt></BookgDt>
        <AddtlNtryInf>NOMINA EMPRESA SL</AddtlNtryInf>
      </Ntry>
      <Ntry>
        <Amt Ccy="EUR">150.00</Amt>
        <CdtDbtInd>DBIT</CdtDbtInd>
        <BookgDt><Dt>2024-03-05</Dt></BookgDt>
        <AddtlNtryInf>COMPRA SUPERMERCADO DIA</AddtlNtryInf>
      </Ntry>
      <Ntry>
        <Amt Ccy="EUR">12.99</Amt>
        <CdtDbtInd>DBIT</CdtDbtInd>
        <ValDt><Dt>2024-03-08</Dt></ValDt>
        <NtryDtls><TxDtls><RmtInf><Ustrd>NETFLIX.COM</Ustrd></RmtInf></TxDtls></NtryDtls>
      </Ntry>
    </Stmt>
  </BkToCstmrStmt>
</Document>
`

func TestXMLLoader_Load(t *testing.T) {
	path := writeFile(t, "statement.xml", camtSample)

	rows, err := loader.NewXMLLoader(logging.NewMockLogger()).Load(path)

	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "2024-03-01", rows[0].Date)
	assert.Equal(t, "NOMINA EMPRESA SL", rows[0].Description)
	assert.Equal(t, "2000.00", rows[0].Amount)
	assert.Equal(t, "EUR", rows[0].Currency)

	// Debit entries come out negative.
	assert.Equal(t, "-150.00", rows[1].Amount)

	// Value date and remittance info fill in when booking date and entry
	// info are absent.
	assert.Equal(t, "2024-03-08", rows[2].Date)
	assert.Equal(t, "NETFLIX.COM", rows[2].Description)
}

func TestXMLLoader_NotAStatement(t *testing.T) {
	path := writeFile(t, "other.xml", `<?xml version="1.0"?><Document><Other/></Document>`)

	_, err := loader.NewXMLLoader(logging.NewMockLogger()).Load(path)

	var invalidErr *parsererror.InvalidFormatError
	require.ErrorAs(t, err, &invalidErr)
}

func TestXMLLoader_Malformed(t *testing.T) {
	path := writeFile(t, "broken.xml", "<Document><unclosed>")

	_, err := loader.NewXMLLoader(logging.NewMockLogger()).Load(path)

	assert.Error(t, err)
}
