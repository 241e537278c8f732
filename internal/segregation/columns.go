// Package segregation builds the daily segregation report: it merges the
// exchange master, collateral, margin, valuation and pledge files into one
// normalized row set, applies operator overrides, and writes the regulatory
// CSV in the fixed exchange column order.
package segregation

// Column identifies one output column by its exchange letter token (A..BM).
// The registry order is the regulatory file format and must never change.
type Column int

const (
	ColA Column = iota // Date
	ColB               // Clearing Member PAN
	ColC               // Trading member PAN
	ColD               // CP Code
	ColE               // CP PAN
	ColF               // Client PAN
	ColG               // Account Type
	ColH               // Segment Indicator
	ColI               // UCC Code
	ColJ               // Financial Ledger balance-A
	ColK               // Financial Ledger balance (clear)-B
	ColL               // Peak Financial Ledger Balance (Clear)-C
	ColM
	ColN
	ColO // Approved Securities Cash Component received
	ColP // Approved Securities Non-cash component received
	ColQ
	ColR
	ColS
	ColT
	ColU
	ColV
	ColW
	ColX
	ColY
	ColZ
	ColAA
	ColAB
	ColAC
	ColAD // Cash placed with CM
	ColAE
	ColAF
	ColAG // Approved Securities Cash Component placed with CM
	ColAH // Approved Securities Non-cash component placed with CM
	ColAI
	ColAJ
	ColAK
	ColAL
	ColAM
	ColAN
	ColAO
	ColAP
	ColAQ
	ColAR
	ColAS
	ColAT // Cash placed with NCL
	ColAU
	ColAV // Fixed deposit receipt (FDR) placed with NCL
	ColAW // Approved Securities Cash Component placed with NCL
	ColAX // Approved Securities Non-cash component placed with NCL
	ColAY
	ColAZ // MTF/Non MTF indicator - always "NA"
	ColBA
	ColBB // Govt Securities received - pledge value
	ColBC
	ColBD // Govt Securities placed with CM - pledge value
	ColBE
	ColBF // Govt Securities placed with NCL - pledge value
	ColBG
	ColBH
	ColBI
	ColBJ
	ColBK
	ColBL // Unclaimed/Unsettled Client Funds - always "NA"
	ColBM

	columnCount
)

// tokens holds the exchange letter token per column
var tokens = [columnCount]string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N",
	"O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"AA", "AB", "AC", "AD", "AE", "AF", "AG", "AH", "AI", "AJ", "AK", "AL",
	"AM", "AN", "AO", "AP", "AQ", "AR", "AS", "AT", "AU", "AV", "AW", "AX",
	"AY", "AZ", "BA", "BB", "BC", "BD", "BE", "BF", "BG", "BH", "BI", "BJ",
	"BK", "BL", "BM",
}

// headers holds the full regulatory column name per column, in file order
var headers = [columnCount]string{
	"Date",
	"Clearing Member PAN",
	"Trading member PAN",
	"CP Code",
	"CP PAN",
	"Client PAN",
	"Account Type",
	"Segment Indicator",
	"UCC Code",
	"Financial Ledger balance-A in the books of TM for clients and in the books of CM for TM (Pro) and in the books of CM for CP",
	"Financial Ledger balance (clear)-B in the books of TM for clients and in the books of CM for TM (Pro) and in the books of CM for CP",
	"Peak Financial Ledger Balance (Clear)-C in the books of TM for clients and in the books of CM for TM (Pro) and in the books of CM for CP",
	"Bank Guarantee (BG) received by TM from clients and by CM from TM (Pro) and from CPs",
	"Fixed Deposit Receipt (FDR) received by TM from clients and by CM from TM(Pro) and from CPs",
	"Approved Securities Cash Component received by TM from clients and by CM from TM(Pro) and from CPs",
	"Approved Securities Non-cash component received by TM from clients and by CM from TM(Pro) and from CPs",
	"Non-Approved Securities received by TM from clients and by CM from TM(Pro) and from CPs",
	"Value of CC approved Commodities received by TM from clients and by CM from TM(Pro) and from CPs",
	"Other collaterals received by TM from clients and by CM from TM(Pro) and from CPs",
	"Credit entry in ledger in lieu of EPI for clients / TM Pro",
	"Pool Account for clients / TM Pro",
	"Cash Retained by TM",
	"Bank Guarantee (BG) Retained by TM",
	"Fixed Deposit Receipt (FDR) Retained by TM",
	"Approved Securities Cash Component Retained by TM",
	"Approved Securities Non-cash component Retained by TM",
	"Non-Approved Securities Retained by TM",
	"Value of CC approved Commodities Retained by TM",
	"Other Collaterals Retained by TM",
	"Cash placed with CM",
	"Bank Guarantee (BG) placed with CM",
	"Fixed deposit receipt (FDR) placed with CM",
	"Approved Securities Cash Component placed with CM",
	"Approved Securities Non-cash component placed with CM",
	"Non-Approved Securities placed with CM",
	"Value of CC approved Commodities placed with CM",
	"Other Collaterals placed with CM",
	"Cash Retained with CM",
	"Bank Guarantee (BG) retained with CM",
	"Fixed deposit receipt (FDR) retained with CM",
	"Approved Securities Cash Component retained with CM",
	"Approved Securities Non-cash component retained with CM",
	"Non-Approved Securities retained with CM",
	"Value of CC approved Commodities retained with CM",
	"Other Collaterals Retained with CM",
	"Cash placed with NCL",
	"Bank Guarantee (BG) placed with NCL",
	"Fixed deposit receipt (FDR) placed with NCL",
	"Approved Securities Cash Component placed with NCL",
	"Approved Securities Non-cash component placed with NCL",
	"Value of CC approved Commodities placed with NCL",
	"MTF /Non MTF indicator/Reason Code",
	"Uncleared Receipts",
	"Govt Securities / T-bills received by TM from clients and by CM from TM(Pro) and from CPs",
	"Govt Securities /T-bills Retained by TM",
	"Govt Securities/T-bills placed with CM",
	"Govt Securities/T bills retained with CM",
	"Govt Securities/T bills placed with NCL",
	"Bank Guarantee (BG) Funded portion retained with CM",
	"Bank Guarantee (BG) Non funded portion retained with CM",
	"Bank Guarantee (BG) Funded portion placed with NCL",
	"Bank Guarantee (BG) Non funded portion placed with NCL",
	"Settlement Amount",
	"Unclaimed/Unsettled Client Funds",
	"Cash Collateral for MTF positions",
}

// String returns the exchange letter token for the column
func (c Column) String() string {
	if c < 0 || c >= columnCount {
		return "?"
	}
	return tokens[c]
}

// Header returns the full regulatory column name
func (c Column) Header() string {
	if c < 0 || c >= columnCount {
		return ""
	}
	return headers[c]
}

// Columns returns all columns in registry (output file) order
func Columns() []Column {
	cols := make([]Column, columnCount)
	for i := range cols {
		cols[i] = Column(i)
	}
	return cols
}

// Headers returns the output header row in registry order
func Headers() []string {
	return append([]string(nil), headers[:]...)
}

// ColumnByHeader resolves a full column name back to its Column, matching
// case-sensitively on the trimmed header. Used when ingesting extra-record
// and SANTOM files that carry the registry layout.
func ColumnByHeader(name string) (Column, bool) {
	for i, h := range headers {
		if h == name {
			return Column(i), true
		}
	}
	return 0, false
}

// IdentityColumns are the leading non-numeric columns (date through UCC code)
func IdentityColumns() []Column {
	return []Column{ColA, ColB, ColC, ColD, ColE, ColF, ColG, ColH, ColI}
}

// SentinelColumns always render as the literal "NA" in the output file
var SentinelColumns = []Column{ColAZ, ColBL}

// NumericColumns returns the segregation value columns (J..BM excluding the
// two NA sentinels), the set the normalizer zero-fills and the zero-row
// partition inspects.
func NumericColumns() []Column {
	cols := make([]Column, 0, int(columnCount)-11)
	for c := ColJ; c < columnCount; c++ {
		if c == ColAZ || c == ColBL {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

// IsNumeric reports whether the column belongs to the numeric segregation set
func IsNumeric(c Column) bool {
	return c >= ColJ && c != ColAZ && c != ColBL
}

// IsSentinel reports whether the column is one of the two fixed "NA" fields
func IsSentinel(c Column) bool {
	return c == ColAZ || c == ColBL
}
