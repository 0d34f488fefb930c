package models

// ChallanPDFData feeds the return-challan HTML template.
type ChallanPDFData struct {
	Mill        *MillProfile // mill letterhead
	Lot         *Lot
	Item        *LotItem
	PartyName   string
	Contacts    string // formatted mobile numbers
	Date        string // formatted return dispatch date
	WeightWords string
	CopyTitle   string
}
