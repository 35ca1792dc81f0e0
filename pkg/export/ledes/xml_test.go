package ledes

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="LEDES"/>
  <xs:element name="invoice"/>
  <xs:element name="inv_number"/>
  <xs:element name="client_id"/>
  <xs:element name="matter_id"/>
  <xs:element name="inv_total"/>
  <xs:element name="bill_start_date"/>
  <xs:element name="bill_end_date"/>
  <xs:element name="inv_date"/>
  <xs:element name="inv_desc"/>
  <xs:element name="fees"/>
  <xs:element name="expenses"/>
  <xs:element name="fee"/>
  <xs:element name="expense"/>
  <xs:element name="date"/>
  <xs:element name="tk"/>
  <xs:element name="name"/>
  <xs:element name="level"/>
  <xs:element name="task"/>
  <xs:element name="activity"/>
  <xs:element name="exp_code"/>
  <xs:element name="desc"/>
  <xs:element name="quant"/>
  <xs:element name="rate"/>
  <xs:element name="cost"/>
</xs:schema>`

func TestXMLEncoder_Encode(t *testing.T) {
	enc := NewXMLEncoder(zerolog.New(zerolog.NewTestWriter(t)), nil)

	out, err := enc.Encode(fixtureInvoice())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "LEDES", root.Tag)
	assert.Equal(t, "2.1", root.SelectAttrValue("version", ""))
	assert.Equal(t, "http://www.ledes.org/LEDES214", root.SelectAttrValue("xmlns", ""))
	assert.Equal(t, "http://www.ledes.org/LEDES214 LEDES214.xsd",
		root.SelectAttrValue("xsi:schemaLocation", ""))

	invoice := root.SelectElement("invoice")
	require.NotNil(t, invoice)
	assert.Equal(t, "2025MMM-000777", invoice.SelectElement("inv_number").Text())
	assert.Equal(t, "02-4388252", invoice.SelectElement("client_id").Text())
	assert.Equal(t, "2025-000777", invoice.SelectElement("matter_id").Text())
	assert.Equal(t, "1155.00", invoice.SelectElement("inv_total").Text())
	assert.Equal(t, "2025-07-01", invoice.SelectElement("bill_start_date").Text())
	assert.Equal(t, "2025-07-31", invoice.SelectElement("bill_end_date").Text())
	assert.Equal(t, "2025-07-31", invoice.SelectElement("inv_date").Text())
	assert.Equal(t, "Monthly Legal Services", invoice.SelectElement("inv_desc").Text())

	fees := invoice.SelectElement("fees").SelectElements("fee")
	require.Len(t, fees, 1)
	fee := fees[0]
	assert.Equal(t, "F1", fee.SelectAttrValue("id", ""))
	assert.Equal(t, "2025-07-03", fee.SelectElement("date").Text())
	assert.Equal(t, "2.5", fee.SelectElement("quant").Text())
	assert.Equal(t, "450.00", fee.SelectElement("rate").Text())
	assert.Equal(t, "1125.00", fee.SelectElement("cost").Text())
	assert.Equal(t, "L100", fee.SelectElement("task").SelectAttrValue("id", ""))
	assert.Equal(t, "A101", fee.SelectElement("activity").SelectAttrValue("id", ""))

	tk := fee.SelectElement("tk")
	require.NotNil(t, tk)
	assert.Equal(t, "MM001", tk.SelectAttrValue("id", ""))
	assert.Equal(t, "Matt Murdock", tk.SelectElement("name").Text())
	assert.Equal(t, "Partner", tk.SelectElement("level").Text())

	exps := invoice.SelectElement("expenses").SelectElements("expense")
	require.Len(t, exps, 1)
	exp := exps[0]
	assert.Equal(t, "E1", exp.SelectAttrValue("id", ""))
	assert.Equal(t, "E101", exp.SelectElement("exp_code").SelectAttrValue("id", ""))
	assert.Equal(t, "150", exp.SelectElement("quant").Text())
	assert.Equal(t, "0.20", exp.SelectElement("rate").Text())
	assert.Equal(t, "30.00", exp.SelectElement("cost").Text())
}

func TestXMLEncoder_Encode_Idempotent(t *testing.T) {
	enc := NewXMLEncoder(zerolog.New(zerolog.NewTestWriter(t)), nil)
	inv := fixtureInvoice()

	first, err := enc.Encode(inv)
	require.NoError(t, err)
	second, err := enc.Encode(inv)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestXMLEncoder_Encode_EmptyInvoice(t *testing.T) {
	enc := NewXMLEncoder(zerolog.New(zerolog.NewTestWriter(t)), nil)
	inv := fixtureInvoice()
	inv.Lines = nil

	out, err := enc.Encode(inv)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	invoice := doc.Root().SelectElement("invoice")
	assert.Empty(t, invoice.SelectElement("client_id").Text())
	assert.Empty(t, invoice.SelectElement("inv_desc").Text())
	assert.Empty(t, invoice.SelectElement("fees").ChildElements())
	assert.Empty(t, invoice.SelectElement("expenses").ChildElements())
}

func TestXMLEncoder_SchemaValidation(t *testing.T) {
	tests := []struct {
		name          string
		schema        string
		validates     bool
		expectWarning string
	}{
		{
			name:      "schema declaring all elements",
			schema:    testSchema,
			validates: true,
		},
		{
			name: "schema missing document elements",
			schema: `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="LEDES"/>
  <xs:element name="invoice"/>
</xs:schema>`,
			validates:     true,
			expectWarning: "schema validation failed",
		},
		{
			name:          "unparseable schema disables validation",
			schema:        "not-an-xsd",
			validates:     false,
			expectWarning: "schema unusable",
		},
		{
			name:          "schema without element declarations",
			schema:        `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"></xs:schema>`,
			validates:     false,
			expectWarning: "schema unusable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log bytes.Buffer
			enc := NewXMLEncoder(zerolog.New(&log), []byte(tt.schema))

			assert.Equal(t, tt.validates, enc.Validates())

			out, err := enc.Encode(fixtureInvoice())
			require.NoError(t, err)
			assert.NotEmpty(t, out, "document must be produced even when validation fails")

			if tt.expectWarning != "" {
				assert.Contains(t, log.String(), tt.expectWarning)
			} else {
				assert.Empty(t, log.String())
			}
		})
	}
}
