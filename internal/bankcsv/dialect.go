package bankcsv

import (
	"strings"

	"github.com/finbooks/finbooks_app/internal/core/domain"
)

// Dialect is a recognized bank/card CSV export layout. Each dialect carries
// its own typed row extractor, so supporting a new bank format means adding a
// variant here rather than scattering conditionals across the pipeline.
type Dialect struct {
	Name      string
	HasHeader bool
	extract   func(row []string) (domain.RawTransaction, error)
}

// Unknown is the zero dialect; files that match no layout are rejected whole.
var Unknown = Dialect{Name: "UNKNOWN"}

// WellsFargo is the headerless five-column checking export:
// date, amount, status, blank, description. Amounts are already signed.
var WellsFargo = Dialect{
	Name:      "WELLS_FARGO",
	HasHeader: false,
	extract:   extractWellsFargo,
}

// CapitalOne is the card export with separate Debit/Credit columns:
// Transaction Date, Posted Date, Card No., Description, Category, Debit, Credit.
var CapitalOne = Dialect{
	Name:      "CAPITAL_ONE",
	HasHeader: true,
	extract:   extractCapitalOne,
}

// Chase is the card export with a single signed Amount column:
// Transaction Date, Post Date, Description, Category, Type, Amount, Memo.
var Chase = Dialect{
	Name:      "CHASE",
	HasHeader: true,
	extract:   extractChase,
}

// QBSelfEmployed is the self-employed bookkeeping export:
// Date, Transaction, Amount, Business, Category, Note. It carries a reviewed
// category and a business/personal marker, so rows can be auto-approved.
var QBSelfEmployed = Dialect{
	Name:      "QB_SELF_EMPLOYED",
	HasHeader: true,
	extract:   extractQBSelfEmployed,
}

// IsUnknown reports whether the dialect failed detection.
func (d Dialect) IsUnknown() bool {
	return d.extract == nil
}

// DetectFormat infers the dialect from the first row of the file. Headerless
// files are matched on column count, headered files on header tokens.
// Unmatched layouts yield Unknown and the caller must reject the whole file.
func DetectFormat(headerRow []string, hasHeader bool) Dialect {
	if !hasHeader {
		if len(headerRow) == wellsFargoColumns {
			return WellsFargo
		}
		return Unknown
	}

	joined := strings.ToLower(strings.Join(headerRow, ","))
	tokens := func(ts ...string) bool {
		for _, t := range ts {
			if !strings.Contains(joined, t) {
				return false
			}
		}
		return true
	}

	switch {
	case tokens("debit", "credit", "card no"):
		return CapitalOne
	case tokens("date", "transaction", "amount", "business"):
		return QBSelfEmployed
	case tokens("type", "memo"):
		return Chase
	default:
		return Unknown
	}
}
