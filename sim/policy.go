package sim

// Policy names, as registered
const (
	PolicyFIFO = "FIFO"
	PolicyLRU = "LRU"
	PolicyOptimal = "Optimal"
	PolicySecondChance = "Second-Chance"
	PolicyClock = "Clock"
)

// PolicyFunc is the uniform entry point every replacement policy implements
type PolicyFunc func(sequence []int, capacity int) (*RunResult, error)

// policyEntry pairs a policy name with its implementation
type policyEntry struct {
	name string
	run PolicyFunc
}

// registry is the fixed, ordered policy table. It is never mutated after
// initialization, so concurrent reads need no synchronization
var registry = []policyEntry{
	{PolicyFIFO, RunFIFO},
	{PolicyLRU, RunLRU},
	{PolicyOptimal, RunOptimal},
	{PolicySecondChance, RunSecondChance},
	{PolicyClock, RunClock},
}

// Policies returns the registered policy names in registration order
func Policies() []string {
	names := make([]string, len(registry))
	for i, entry := range registry {
		names[i] = entry.name
	}
	return names
}

// Lookup returns the implementation registered under name
func Lookup(name string) (PolicyFunc, bool) {
	for _, entry := range registry {
		if entry.name == name {
			return entry.run, true
		}
	}
	return nil, false
}

// Run executes one policy by name
func Run(name string, sequence []int, capacity int) (*RunResult, error) {
	run, ok := Lookup(name)
	if !ok {
		return nil, ErrUnknownPolicy("Run", name)
	}
	return run(sequence, capacity)
}

// RunAll executes every registered policy on the same input and returns one
// result per policy name. Each run builds its own frame set, so results are
// independent; a validation failure aborts the whole batch
func RunAll(sequence []int, capacity int) (map[string]*RunResult, error) {
	results := make(map[string]*RunResult, len(registry))
	for _, entry := range registry {
		result, err := entry.run(sequence, capacity)
		if err != nil {
			return nil, err
		}
		results[entry.name] = result
	}
	return results, nil
}
