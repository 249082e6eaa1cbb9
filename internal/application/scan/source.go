// Package scan walks an SMS inbox over a date range and feeds each message
// through the ingestion pipeline, one call at a time.
package scan

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Message is one raw inbox message. Multi-part deliveries are already
// concatenated into Body by the source.
type Message struct {
	Body       string
	Sender     string
	ReceivedAt time.Time
}

// smsBackup models the common SMS backup XML export:
// <smses><sms address="..." body="..." date="epoch-millis"/></smses>
type smsBackup struct {
	XMLName xml.Name   `xml:"smses"`
	SMS     []smsEntry `xml:"sms"`
}

type smsEntry struct {
	Address string `xml:"address,attr"`
	Body    string `xml:"body,attr"`
	Date    string `xml:"date,attr"`
}

// LoadBackup reads an SMS backup XML file into messages, preserving file
// order. Entries with an unparseable date are skipped.
func LoadBackup(path string) ([]Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup file: %w", err)
	}
	return ParseBackup(data)
}

// ParseBackup parses SMS backup XML bytes.
func ParseBackup(data []byte) ([]Message, error) {
	var backup smsBackup
	if err := xml.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("parse backup XML: %w", err)
	}

	messages := make([]Message, 0, len(backup.SMS))
	for _, sms := range backup.SMS {
		millis, err := strconv.ParseInt(sms.Date, 10, 64)
		if err != nil {
			continue
		}
		messages = append(messages, Message{
			Body:       sms.Body,
			Sender:     sms.Address,
			ReceivedAt: time.UnixMilli(millis),
		})
	}
	return messages, nil
}
