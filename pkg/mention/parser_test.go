package mention

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func makeRoster(names ...string) []Persona {
	roster := make([]Persona, len(names))
	for i, n := range names {
		roster[i] = Persona{Id: uuid.New(), Name: n, OwnerId: uuid.New()}
	}
	return roster
}

func idSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func TestExtractMentionsDisambiguation(t *testing.T) {
	mikeId := uuid.New()
	sarahId := uuid.New()
	mikesTom := Persona{Id: uuid.New(), Name: "Tom", OwnerId: mikeId}
	sarahsTom := Persona{Id: uuid.New(), Name: "Tom", OwnerId: sarahId}
	roster := []Persona{mikesTom, sarahsTom}

	labels := OwnerLabels(roster, map[uuid.UUID]string{mikeId: "Mike", sarahId: "Sarah"})
	if labels[mikesTom.Id] != "Mike" || labels[sarahsTom.Id] != "Sarah" {
		t.Fatalf("OwnerLabels = %v, want both Toms labeled", labels)
	}

	// Disambiguated form resolves to exactly the named owner's Tom.
	ids, err := ExtractMentions("@Tom (Don Mike's) go", roster, labels, 5)
	if err != nil {
		t.Fatalf("ExtractMentions error: %v", err)
	}
	got := idSet(ids)
	if len(got) != 1 || !got[mikesTom.Id] {
		t.Errorf("disambiguated mention = %v, want only Mike's Tom", ids)
	}

	// Plain form resolves to every Tom at the table.
	ids, err = ExtractMentions("@Tom go", roster, labels, 5)
	if err != nil {
		t.Fatalf("ExtractMentions error: %v", err)
	}
	got = idSet(ids)
	if len(got) != 2 || !got[mikesTom.Id] || !got[sarahsTom.Id] {
		t.Errorf("plain mention = %v, want both Toms", ids)
	}
}

func TestExtractMentionsAllShortCircuit(t *testing.T) {
	roster := makeRoster("Tom", "Vinnie", "The Accountant")

	ids, err := ExtractMentions("@all hello @Tom", roster, nil, 5)
	if err != nil {
		t.Fatalf("ExtractMentions error: %v", err)
	}
	if len(ids) != len(roster) {
		t.Errorf("@all returned %d ids, want %d", len(ids), len(roster))
	}
}

func TestExtractMentionsAllOverCap(t *testing.T) {
	roster := makeRoster("A", "B", "C", "D", "E", "F")

	_, err := ExtractMentions("@all everyone", roster, nil, 5)
	var tooMany *TooManyMentionsError
	if !errors.As(err, &tooMany) {
		t.Fatalf("ExtractMentions error = %v, want TooManyMentionsError", err)
	}
	if tooMany.Cap != 5 || tooMany.RosterSize != 6 {
		t.Errorf("error = %+v, want cap 5 roster 6", tooMany)
	}
}

func TestExtractMentionsBoundaryRule(t *testing.T) {
	roster := makeRoster("Al")

	tests := []struct {
		name string
		text string
		want int
	}{
		{"prefix of longer word", "@Alfredo is here", 0},
		{"no at sign", "Alfredo is here", 0},
		{"end of string", "ask @Al", 1},
		{"trailing comma", "hey @Al, got a minute", 1},
		{"trailing whitespace", "@Al what do you think", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := ExtractMentions(tt.text, roster, nil, 5)
			if err != nil {
				t.Fatalf("ExtractMentions error: %v", err)
			}
			if len(ids) != tt.want {
				t.Errorf("got %d mentions, want %d", len(ids), tt.want)
			}
		})
	}
}

func TestExtractMentionsStrippedTheForm(t *testing.T) {
	roster := makeRoster("The Accountant")

	ids, err := ExtractMentions("@Accountant run the numbers", roster, nil, 5)
	if err != nil {
		t.Fatalf("ExtractMentions error: %v", err)
	}
	if len(ids) != 1 || ids[0] != roster[0].Id {
		t.Errorf("stripped form = %v, want the Accountant", ids)
	}
}

func TestExtractMentionsNoDoubleReport(t *testing.T) {
	roster := makeRoster("Vinnie")

	ids, err := ExtractMentions("@Vinnie and again @Vinnie", roster, nil, 5)
	if err != nil {
		t.Fatalf("ExtractMentions error: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("got %d mentions, want 1", len(ids))
	}
}
