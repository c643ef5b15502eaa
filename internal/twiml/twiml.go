// Package twiml models the timed voice-response document sent to the
// telephony provider: spoken patient lines interleaved with fixed silences,
// terminated by a goodbye and a hangup.
package twiml

import (
	"encoding/xml"
	"fmt"
)

// Verb is one element of a voice-response document.
type Verb interface {
	// Seconds returns how long the verb occupies on the call, in seconds.
	// Spoken text reports zero; only silences have a fixed known length.
	Seconds() int
}

// Pause is a fixed-length silence.
type Pause struct {
	XMLName xml.Name `xml:"Pause"`
	Length  int      `xml:"length,attr"`
}

// Say speaks text with a named voice at a given rate.
type Say struct {
	XMLName xml.Name `xml:"Say"`
	Voice   string   `xml:"voice,attr"`
	Rate    string   `xml:"rate,attr"`
	Text    string   `xml:",chardata"`
}

// Hangup terminates the call.
type Hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

func (p Pause) Seconds() int  { return p.Length }
func (s Say) Seconds() int    { return 0 }
func (h Hangup) Seconds() int { return 0 }

// Document is an ordered voice-response document.
type Document struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []Verb
}

// Encode renders the document as a TwiML XML string with the standard header.
func (d Document) Encode() (string, error) {
	b, err := xml.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("twiml: encode: %w", err)
	}
	return xml.Header + string(b), nil
}

// SilenceSeconds sums the lengths of all Pause verbs. The total is
// deterministic for a given script length.
func (d Document) SilenceSeconds() int {
	total := 0
	for _, v := range d.Verbs {
		total += v.Seconds()
	}
	return total
}
