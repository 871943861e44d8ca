package events

import "time"

// KindAlarmRinging identifies alarms going off.
const KindAlarmRinging Kind = "alarm.ringing"

// AlarmRinging reports a scheduled alarm that went off.
type AlarmRinging struct {
	Base
	AlarmID string
	Target  time.Time
}

// NewAlarmRinging creates an alarm ringing event.
func NewAlarmRinging(alarmID string, target time.Time) AlarmRinging {
	return AlarmRinging{Base: NewBase(KindAlarmRinging), AlarmID: alarmID, Target: target}
}
