// Package domain contains the document aggregate and its lifecycle
// rules.
package domain

import "fmt"

// Type classifies a commercial document.
type Type string

const (
	TypeQuote             Type = "QUOTE"
	TypeOrder             Type = "ORDER"
	TypeDeliveryNote      Type = "DELIVERY_NOTE"
	TypeInvoice           Type = "INVOICE"
	TypeElectronicInvoice Type = "ELECTRONIC_INVOICE"
	TypeCreditNote        Type = "CREDIT_NOTE"
	TypeDebitNote         Type = "DEBIT_NOTE"
	TypeReceipt           Type = "RECEIPT"
)

type typeInfo struct {
	code                  string
	fiscal                bool
	generatesInstallments bool
}

var typeInfos = map[Type]typeInfo{
	TypeQuote:             {code: "PV"},
	TypeOrder:             {code: "OR"},
	TypeDeliveryNote:      {code: "DDT"},
	TypeInvoice:           {code: "FT", fiscal: true, generatesInstallments: true},
	TypeElectronicInvoice: {code: "FE", fiscal: true, generatesInstallments: true},
	TypeCreditNote:        {code: "NC", fiscal: true},
	TypeDebitNote:         {code: "ND", fiscal: true, generatesInstallments: true},
	TypeReceipt:           {code: "RC", fiscal: true},
}

// ParseType validates a raw document type string.
func ParseType(raw string) (Type, error) {
	t := Type(raw)
	if !t.Valid() {
		return "", fmt.Errorf("unknown document type %q", raw)
	}
	return t, nil
}

func (t Type) Valid() bool {
	_, ok := typeInfos[t]
	return ok
}

// Code returns the short printable code (FT, DDT, ...).
func (t Type) Code() string {
	return typeInfos[t].code
}

// Fiscal reports whether the type is subject to tax-authority rules.
func (t Type) Fiscal() bool {
	return typeInfos[t].fiscal
}

// GeneratesInstallments reports whether issuing a document of this type
// creates payment installments.
func (t Type) GeneratesInstallments() bool {
	return typeInfos[t].generatesInstallments
}
