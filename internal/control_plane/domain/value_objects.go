package domain

type StageID string

func (vo StageID) String() string {
	return string(vo)
}

type TaskID string

func (vo TaskID) String() string {
	return string(vo)
}

// TaskKey identifies a task within the stage that owns it. The same TaskID
// may appear in several stages without colliding.
type TaskKey struct {
	Stage StageID
	Task  TaskID
}

func (k TaskKey) String() string {
	return string(k.Stage) + "/" + string(k.Task)
}

type Title string
type Description string
type Prompt string
