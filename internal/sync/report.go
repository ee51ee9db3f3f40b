package sync

// Action classifies the outcome for a single file entry.
type Action int

const (
	// ActionSkipped means the entry had no file to act on.
	ActionSkipped Action = iota
	// ActionPlaced means the file was installed at its destination.
	ActionPlaced
	// ActionRemoved means the file was deleted from its destination.
	ActionRemoved
)

// FileOp records the outcome for one entry of a file group.
type FileOp struct {
	Name   string // file name including suffix
	Source string // absolute source path
	Dest   string // absolute destination path
	Action Action
}

// GroupResult aggregates the outcomes of one file group.
type GroupResult struct {
	Label   string
	Skipped bool // the whole group was short-circuited
	Ops     []FileOp
}

// Report aggregates the outcomes of a full run.
type Report struct {
	Groups []GroupResult
}

// Placed counts entries installed across all groups.
func (r *Report) Placed() int { return r.count(ActionPlaced) }

// Removed counts entries removed across all groups.
func (r *Report) Removed() int { return r.count(ActionRemoved) }

// SkippedEntries counts entries skipped across all groups.
func (r *Report) SkippedEntries() int { return r.count(ActionSkipped) }

func (r *Report) count(a Action) int {
	n := 0
	for _, g := range r.Groups {
		for _, op := range g.Ops {
			if op.Action == a {
				n++
			}
		}
	}
	return n
}
