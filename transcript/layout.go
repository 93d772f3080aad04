package transcript

// Layout names the tiers and categories that carry each column.
// Transversal columns are looked up by tier id, moves by tier category.
type Layout struct {
	SpeakerCategory string
	NoteTier        string
	NoteParticipant string

	Task                 string
	InteractionalSegment string
	MicroTask            string
	Sequence             string
	Transaction          string

	NonVerbal  string
	MoveLevel1 string
	MoveLevel2 string
	MoveLevel3 string

	ForwardReferences bool
}

func DefaultLayout() Layout {
	return Layout{
		SpeakerCategory:      "Parlante",
		NoteTier:             "Note",
		NoteParticipant:      "Note",
		Task:                 "Task",
		InteractionalSegment: "Interactional segment",
		MicroTask:            "Micro task",
		Sequence:             "Sequence",
		Transaction:          "Transaction",
		NonVerbal:            "Non verbal action",
		MoveLevel1:           "MoveLev1",
		MoveLevel2:           "MoveLev2",
		MoveLevel3:           "MoveLev3",
	}
}

func (l Layout) structure(m *Model, q Interval) Structure {
	return Structure{
		Task:                 m.Transversal(l.Task, q),
		InteractionalSegment: m.Transversal(l.InteractionalSegment, q),
		MicroTask:            m.Transversal(l.MicroTask, q),
		Sequence:             m.Transversal(l.Sequence, q),
		Transaction:          m.Transversal(l.Transaction, q),
	}
}
