package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Species string

const (
	SpeciesBeef  Species = "beef"
	SpeciesDairy Species = "dairy"
	SpeciesPigs  Species = "pigs"
	SpeciesSheep Species = "sheep"
)

// AllSpecies lists every species the scheme covers.
var AllSpecies = []Species{SpeciesBeef, SpeciesDairy, SpeciesPigs, SpeciesSheep}

func (s Species) Valid() bool {
	switch s {
	case SpeciesBeef, SpeciesDairy, SpeciesPigs, SpeciesSheep:
		return true
	}
	return false
}

type ClaimType string

const (
	TypeReview   ClaimType = "review"
	TypeFollowUp ClaimType = "followUp"
)

func (t ClaimType) Valid() bool {
	return t == TypeReview || t == TypeFollowUp
}

type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

type TestResult string

const (
	ResultPositive TestResult = "positive"
	ResultNegative TestResult = "negative"
)

// Claim statuses follow the scheme's back-office status table.
const (
	StatusInCheck    = 5
	StatusReadyToPay = 9
	StatusRejected   = 10
	StatusOnHold     = 11
)

var statusTransitions = map[int][]int{
	StatusInCheck: {StatusReadyToPay, StatusRejected, StatusOnHold},
	StatusOnHold:  {StatusInCheck, StatusReadyToPay, StatusRejected},
}

// CanTransition reports whether a claim may move between the two statuses.
// Ready-to-pay and rejected are terminal.
func CanTransition(from, to int) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Claim is a persisted claim record. Data holds the submitted field bag
// verbatim; the decoded form is ClaimData.
type Claim struct {
	ID                   snowflake.ID    `gorm:"primaryKey" json:"id"`
	Reference            string          `gorm:"uniqueIndex;not null" json:"reference"`
	ApplicationReference string          `gorm:"index:idx_claims_app_species,priority:1;not null" json:"applicationReference"`
	Type                 ClaimType       `gorm:"type:text;not null" json:"type"`
	Species              Species         `gorm:"index:idx_claims_app_species,priority:2;type:text;not null" json:"species"`
	StatusID             int             `gorm:"not null" json:"statusId"`
	Data                 datatypes.JSON  `gorm:"type:jsonb;not null" json:"data"`
	PaymentAmount        decimal.Decimal `gorm:"type:numeric(10,2)" json:"paymentAmount"`
	CreatedBy            string          `gorm:"not null" json:"createdBy"`
	UpdatedBy            string          `json:"updatedBy,omitempty"`

	HerdID           *snowflake.ID `gorm:"column:herd_id" json:"herdId,omitempty"`
	HerdVersion      *int          `json:"herdVersion,omitempty"`
	HerdAssociatedAt *time.Time    `json:"herdAssociatedAt,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Claim) TableName() string { return "claims" }

// DecodeData decodes the stored field bag.
func (c *Claim) DecodeData() (*ClaimData, error) {
	var data ClaimData
	if err := json.Unmarshal(c.Data, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// HerdInput is the herd section of a claim's data bag. Version 1 declares a
// new herd; a higher version updates an existing one (no name means the
// stored name is kept).
type HerdInput struct {
	HerdID      string   `json:"herdId,omitempty"`
	HerdVersion int      `json:"herdVersion"`
	HerdName    string   `json:"herdName,omitempty"`
	CPH         string   `json:"cph"`
	HerdReasons []string `json:"herdReasons"`
	HerdSame    *YesNo   `json:"herdSame,omitempty"`
}

// SheepTestResult is one entry of a sheep follow-up's testResults array.
// Result is either a plain string or a nested array of the same shape.
type SheepTestResult struct {
	DiseaseType string          `json:"diseaseType"`
	Result      json.RawMessage `json:"result"`
}

// ClaimData is the species-and-date-dependent field bag of a claim. Field
// names are the external contract and must not change. TestResults and
// Biosecurity are polymorphic across species and are decoded by the rules
// that consume them.
type ClaimData struct {
	TypeOfLivestock Species `json:"typeOfLivestock"`
	DateOfVisit     string  `json:"dateOfVisit"`
	SpeciesNumbers  *YesNo  `json:"speciesNumbers,omitempty"`
	VetsName        *string `json:"vetsName,omitempty"`
	VetRCVSNumber   *string `json:"vetRCVSNumber,omitempty"`

	Amount *float64 `json:"amount,omitempty"`

	DateOfTesting            *string `json:"dateOfTesting,omitempty"`
	LaboratoryURN            *string `json:"laboratoryURN,omitempty"`
	NumberAnimalsTested      *int    `json:"numberAnimalsTested,omitempty"`
	NumberOfOralFluidSamples *int    `json:"numberOfOralFluidSamples,omitempty"`
	NumberOfSamplesTested    *int    `json:"numberOfSamplesTested,omitempty"`

	// string for beef/dairy/pigs, array of SheepTestResult for sheep
	// follow-ups.
	TestResults json.RawMessage `json:"testResults,omitempty"`

	ReviewTestResults *TestResult `json:"reviewTestResults,omitempty"`
	PiHunt            *YesNo      `json:"piHunt,omitempty"`
	PiHuntRecommended *YesNo      `json:"piHuntRecommended,omitempty"`
	PiHuntAllAnimals  *YesNo      `json:"piHuntAllAnimals,omitempty"`

	// "yes"/"no" for beef and dairy; for pigs either the literal "no" or
	// {"biosecurity":"yes","assessmentPercentage":"1".."100"}.
	Biosecurity json.RawMessage `json:"biosecurity,omitempty"`

	HerdVaccinationStatus *string `json:"herdVaccinationStatus,omitempty"`
	PigsFollowUpTest      *string `json:"pigsFollowUpTest,omitempty"`
	PigsPcrTestResult     *string `json:"pigsPcrTestResult,omitempty"`
	PigsElisaTestResult   *string `json:"pigsElisaTestResult,omitempty"`
	PigsGeneticSequencing *string `json:"pigsGeneticSequencing,omitempty"`

	SheepEndemicsPackage *string `json:"sheepEndemicsPackage,omitempty"`

	Herd *HerdInput `json:"herd,omitempty"`
}

// StringTestResults decodes testResults as the plain string used by beef,
// dairy and pigs claims.
func (d *ClaimData) StringTestResults() (string, bool) {
	if len(d.TestResults) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(d.TestResults, &s); err != nil {
		return "", false
	}
	return s, true
}

// SheepTestResults decodes testResults as the sheep follow-up array shape.
func (d *ClaimData) SheepTestResults() ([]SheepTestResult, bool) {
	if len(d.TestResults) == 0 {
		return nil, false
	}
	var entries []SheepTestResult
	if err := json.Unmarshal(d.TestResults, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// BiosecurityAnswer decodes biosecurity as the plain "yes"/"no" answer used
// by beef and dairy follow-ups.
func (d *ClaimData) BiosecurityAnswer() (YesNo, bool) {
	if len(d.Biosecurity) == 0 {
		return "", false
	}
	var s YesNo
	if err := json.Unmarshal(d.Biosecurity, &s); err != nil {
		return "", false
	}
	return s, true
}

// PigsBiosecurity is the object form of a pigs follow-up biosecurity answer.
type PigsBiosecurity struct {
	Biosecurity          YesNo  `json:"biosecurity"`
	AssessmentPercentage string `json:"assessmentPercentage"`
}

// PigsBiosecurityAnswer decodes biosecurity as the pigs follow-up object.
func (d *ClaimData) PigsBiosecurityAnswer() (*PigsBiosecurity, bool) {
	if len(d.Biosecurity) == 0 {
		return nil, false
	}
	var obj PigsBiosecurity
	if err := json.Unmarshal(d.Biosecurity, &obj); err != nil {
		return nil, false
	}
	return &obj, true
}
