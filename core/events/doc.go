// Package events defines the typed events a running assistant reports to
// its front ends and observers.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - user_input.*
//   - assistant_response.*
//   - turn_state.*
//   - display.*
//   - alarm.*
//
// user_input events
//
//   - UserAudioLevel (user_input.audio_level): loudness of the latest
//     captured frame in [0, 1].
//   - UserUtterance (user_input.utterance): the text a turn acts on, with
//     the channel it arrived through.
//
// assistant_response events
//
//   - AssistantResponseFinal (assistant_response.final): final answer of a
//     turn and whether it was spoken.
//
// turn_state events
//
//   - TurnStateChanged (turn_state.changed): the controller moved to a new
//     state.
//   - TurnStarted (turn_state.started): a trigger started a turn.
//   - TurnCompleted (turn_state.completed): a turn produced an answer.
//   - TurnFailed (turn_state.failed): a turn ended on an error.
//   - TurnCancelled (turn_state.cancelled): a turn was interrupted.
//
// display events
//
//   - LogLine (display.log_line): a line for the conversation log.
//
// alarm events
//
//   - AlarmRinging (alarm.ringing): a scheduled alarm went off.
package events
