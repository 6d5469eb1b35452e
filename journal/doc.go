// Package journal records geotagging runs in a SQLite database.
//
// Every run gets a row with its parameters and timing, and every processed
// image a row with either the written fix or the reason it was skipped. DB
// implements mapillarytools.Recorder, so it is attached with
// Tagger.WithRecorder.
package journal
