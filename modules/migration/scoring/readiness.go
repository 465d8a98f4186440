package scoring

// Stage is one of the nine ordered migration-cluster readiness milestones.
type Stage int

const (
	StageOrderlist Stage = iota
	StageInventory
	StageAnalysis
	StageDesign
	StageBuild
	StageTest
	StageAcceptance
	StageDeployment
	StageDecharge
)

var stageLabels = [...]string{
	StageOrderlist:  "Orderlist to DEP",
	StageInventory:  "Inventory",
	StageAnalysis:   "Analysis",
	StageDesign:     "Design",
	StageBuild:      "Build",
	StageTest:       "Test",
	StageAcceptance: "Acceptance",
	StageDeployment: "Deployment",
	StageDecharge:   "Decharge",
}

// stagePercents defines the forward mapping; the reverse mapping reads each
// entry as the lower bound of a half-open band ending at the next entry.
var stagePercents = [...]float64{
	StageOrderlist:  10,
	StageInventory:  20,
	StageAnalysis:   30,
	StageDesign:     40,
	StageBuild:      50,
	StageTest:       60,
	StageAcceptance: 70,
	StageDeployment: 85,
	StageDecharge:   100,
}

func (s Stage) String() string { return stageLabels[s] }

// Percent returns the progress percentage the stage maps to.
func (s Stage) Percent() float64 { return stagePercents[s] }

// Stages lists all readiness stages in execution order.
func Stages() []Stage {
	out := make([]Stage, len(stageLabels))
	for i := range out {
		out[i] = Stage(i)
	}
	return out
}

var stagesByLabel = func() map[string]Stage {
	m := make(map[string]Stage, len(stageLabels))
	for i, label := range stageLabels {
		m[normalizeStatus(label)] = Stage(i)
	}
	return m
}()

// ParseStage resolves a readiness status text to its stage. Absent or
// unrecognized texts yield no readiness value; callers must exclude those
// from aggregates rather than score them as zero.
func ParseStage(status string) (Stage, bool) {
	s, ok := stagesByLabel[normalizeStatus(status)]
	return s, ok
}

// StageForPercent reverse-maps an aggregate percentage onto the stage whose
// half-open band contains it. Percentages below the first stage carry no
// representative stage.
func StageForPercent(p float64) (Stage, bool) {
	if p < stagePercents[0] {
		return 0, false
	}
	stage := Stage(0)
	for i := len(stagePercents) - 1; i >= 0; i-- {
		if p >= stagePercents[i] {
			stage = Stage(i)
			break
		}
	}
	return stage, true
}
