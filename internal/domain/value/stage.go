package value

// Stage is a named pipeline column of an uploaded deal sheet.
type Stage string

const (
	StageApplication     Stage = "1. Application"
	StageAssessment      Stage = "2. Assessment"
	StageApproved        Stage = "3. Approved"
	StageLoanDocument    Stage = "4. Loan Document"
	StageSettlementQueue Stage = "5. Settlement Queue"
	StageSettled         Stage = "6. Settled"
)

// StageCount is the number of pipeline stages after enquiry.
const StageCount = 6

// Stages lists pipeline stages in order. Index i of entity.Deal.Stages holds
// the marker for Stages[i].
//
//nolint:gochecknoglobals
var Stages = [StageCount]Stage{
	StageApplication,
	StageAssessment,
	StageApproved,
	StageLoanDocument,
	StageSettlementQueue,
	StageSettled,
}

// SettledIndex is the position of StageSettled in Stages.
const SettledIndex = StageCount - 1

// SettlementFlag marks settlement progress outside the numbered stages.
type SettlementFlag string

const (
	SettlementBooked SettlementFlag = "Settlement Booked"
	SettlementDate   SettlementFlag = "Settlement Date"
)

//nolint:gochecknoglobals
var SettlementFlags = [2]SettlementFlag{SettlementBooked, SettlementDate}

func (s Stage) String() string {
	return string(s)
}

func (f SettlementFlag) String() string {
	return string(f)
}
