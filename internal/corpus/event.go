package corpus

// Event is one training record: the underscore-joined syllable groups of
// a line's words (cues) and the underscore-joined words themselves
// (outcomes). The i-th cue group corresponds to the i-th outcome word.
type Event struct {
	Cues     string
	Outcomes string
}

// Empty reports whether the event carries no content, i.e. the line had
// no surviving words. Empty events keep their position in the pipeline
// but are omitted from the event file.
func (e Event) Empty() bool {
	return e.Cues == "" && e.Outcomes == ""
}
