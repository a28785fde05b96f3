package rules

// Weights are the six prioritization sliders, integers clamped to 0-10.
// Nothing in this tool computes with them; they are configuration destined
// for export alongside the rules.
type Weights struct {
	PriorityLevel     int `json:"priorityLevel" yaml:"priority_level"`
	RequestedTasks    int `json:"requestedTasks" yaml:"requested_tasks"`
	Fairness          int `json:"fairness" yaml:"fairness"`
	WorkerUtilization int `json:"workerUtilization" yaml:"worker_utilization"`
	SkillMatch        int `json:"skillMatch" yaml:"skill_match"`
	PhaseBalance      int `json:"phaseBalance" yaml:"phase_balance"`
}

// DefaultWeights returns the neutral middle setting for every slider.
func DefaultWeights() Weights {
	return Weights{
		PriorityLevel:     5,
		RequestedTasks:    5,
		Fairness:          5,
		WorkerUtilization: 5,
		SkillMatch:        5,
		PhaseBalance:      5,
	}
}

// Names lists the slider names in canonical order.
var Names = []string{
	"priorityLevel",
	"requestedTasks",
	"fairness",
	"workerUtilization",
	"skillMatch",
	"phaseBalance",
}

// Get returns the named slider value and whether the name is known.
func (w Weights) Get(name string) (int, bool) {
	switch name {
	case "priorityLevel":
		return w.PriorityLevel, true
	case "requestedTasks":
		return w.RequestedTasks, true
	case "fairness":
		return w.Fairness, true
	case "workerUtilization":
		return w.WorkerUtilization, true
	case "skillMatch":
		return w.SkillMatch, true
	case "phaseBalance":
		return w.PhaseBalance, true
	}
	return 0, false
}

// Set assigns the named slider, clamping to the 0-10 range. Unknown names
// return false.
func (w *Weights) Set(name string, value int) bool {
	value = clamp(value)
	switch name {
	case "priorityLevel":
		w.PriorityLevel = value
	case "requestedTasks":
		w.RequestedTasks = value
	case "fairness":
		w.Fairness = value
	case "workerUtilization":
		w.WorkerUtilization = value
	case "skillMatch":
		w.SkillMatch = value
	case "phaseBalance":
		w.PhaseBalance = value
	default:
		return false
	}
	return true
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
