// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Planner: a registered account; owns everything else
  - Event: an occasion with a date, optional time and venue
  - Guest: a person a planner can invite
  - Attendance: the RSVP record joining a Guest to an Event
  - EventGuest: a Guest as seen from one Event, with its RSVP state

Every domain type has a Validate method. The db package calls it before
each insert and update, so invalid rows never reach the database no matter
which handler produced them.

# Request Types

PATCH requests use pointer fields. A nil field means "not supplied" and is
left untouched:

	var req models.UpdateEventRequest
	if req.Venue != nil {
		event.Venue = req.Venue
	}

# Formats

	email:  [^@]+@[^@]+\.[^@]+
	phone:  optional "+" then 7 to 15 digits
	date:   YYYY-MM-DD
	time:   HH:MM (24 hour)
*/
package models
