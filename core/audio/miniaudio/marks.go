package miniaudio

type playbackMark struct {
	name     string
	position int
	callback func(string)
}

type playbackMarks []playbackMark

func (m playbackMarks) call() {
	for _, mark := range m {
		if mark.callback != nil {
			mark.callback(mark.name)
		}
	}
}

// markQueue tracks marks by their byte offset into the queued audio.
type markQueue struct {
	marks playbackMarks
}

func (q *markQueue) add(name string, position int, callback func(string)) {
	q.marks = append(q.marks, playbackMark{name: name, position: position, callback: callback})
}

// advance moves all marks by consumed bytes and returns the ones that have
// been played. Once the buffer is drained every mark has been reached.
func (q *markQueue) advance(consumed int, drained bool) playbackMarks {
	passed := 0
	for i := range q.marks {
		q.marks[i].position -= consumed
		if drained || q.marks[i].position <= 0 {
			passed = i + 1
		}
	}
	if passed == 0 {
		return nil
	}

	reached := q.marks[:passed:passed]
	q.marks = q.marks[passed:]
	return reached
}

func (q *markQueue) clear() playbackMarks {
	released := q.marks
	q.marks = nil
	return released
}
