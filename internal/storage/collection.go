package storage

import (
	"encoding/json"
	"fmt"
)

// JSON documents stored in the col row. Anki reads these verbatim, so the
// shapes below mirror what the desktop application writes for a fresh
// collection.

type fieldJSON struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	RTL    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

type templateJSON struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	Qfmt  string `json:"qfmt"`
	Afmt  string `json:"afmt"`
	Bqfmt string `json:"bqfmt"`
	Bafmt string `json:"bafmt"`
	Did   *int64 `json:"did"`
}

type modelJSON struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Type      int            `json:"type"`
	Mod       int64          `json:"mod"`
	Usn       int            `json:"usn"`
	Sortf     int            `json:"sortf"`
	Did       int64          `json:"did"`
	Tmpls     []templateJSON `json:"tmpls"`
	Flds      []fieldJSON    `json:"flds"`
	CSS       string         `json:"css"`
	LatexPre  string         `json:"latexPre"`
	LatexPost string         `json:"latexPost"`
	Req       [][]any        `json:"req"`
	Tags      []string       `json:"tags"`
	Vers      []string       `json:"vers"`
}

type deckJSON struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Desc             string `json:"desc"`
	Mod              int64  `json:"mod"`
	Usn              int    `json:"usn"`
	Collapsed        bool   `json:"collapsed"`
	BrowserCollapsed bool   `json:"browserCollapsed"`
	NewToday         [2]int `json:"newToday"`
	RevToday         [2]int `json:"revToday"`
	LrnToday         [2]int `json:"lrnToday"`
	TimeToday        [2]int `json:"timeToday"`
	Dyn              int    `json:"dyn"`
	ExtendNew        int    `json:"extendNew"`
	ExtendRev        int    `json:"extendRev"`
	Conf             int    `json:"conf"`
}

const modelCSS = `.card {
 font-family: arial;
 font-size: 20px;
 text-align: center;
 color: black;
 background-color: white;
}`

const latexPre = `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}
`

const latexPost = `\end{document}`

// dconfDefault is the default options group every deck references.
const dconfDefault = `{"1":{"id":1,"name":"Default","mod":0,"usn":0,"maxTaken":60,"autoplay":true,"timer":0,"replayq":true,"dyn":false,"new":{"bury":true,"delays":[1,10],"initialFactor":2500,"ints":[1,4,7],"order":1,"perDay":20,"separate":true},"rev":{"bury":true,"ease4":1.3,"fuzz":0.05,"ivlFct":1,"maxIvl":36500,"minSpace":1,"perDay":100},"lapse":{"delays":[10],"leechAction":0,"leechFails":8,"minInt":1,"mult":0}}}`

// encodeModels builds the models JSON: a single two-field note type with
// one template whose answer side shows both fields.
func encodeModels(modelID, deckID, modSecs int64) (string, error) {
	model := modelJSON{
		ID:    modelID,
		Name:  "Basic (front and back)",
		Type:  0,
		Mod:   modSecs,
		Usn:   -1,
		Sortf: 0,
		Did:   deckID,
		Tmpls: []templateJSON{
			{
				Name: "Card 1",
				Ord:  0,
				Qfmt: "{{Front}}",
				Afmt: "{{FrontSide}}\n\n<hr id=\"answer\">\n\n{{Back}}",
			},
		},
		Flds: []fieldJSON{
			{Name: "Front", Ord: 0, Font: "Arial", Size: 20, Media: []string{}},
			{Name: "Back", Ord: 1, Font: "Arial", Size: 20, Media: []string{}},
		},
		CSS:       modelCSS,
		LatexPre:  latexPre,
		LatexPost: latexPost,
		Req:       [][]any{{0, "all", []int{0}}},
		Tags:      []string{},
		Vers:      []string{},
	}

	out, err := json.Marshal(map[string]modelJSON{
		fmt.Sprintf("%d", modelID): model,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode model definition: %w", err)
	}
	return string(out), nil
}

// encodeDecks builds the decks JSON: the mandatory default deck plus the
// generated one.
func encodeDecks(deckID, modSecs int64, deckName string) (string, error) {
	decks := map[string]deckJSON{
		"1": {
			ID:   1,
			Name: "Default",
			Conf: 1,
		},
		fmt.Sprintf("%d", deckID): {
			ID:   deckID,
			Name: deckName,
			Mod:  modSecs,
			Usn:  -1,
			Conf: 1,
		},
	}

	out, err := json.Marshal(decks)
	if err != nil {
		return "", fmt.Errorf("failed to encode deck definition: %w", err)
	}
	return string(out), nil
}

// encodeConf builds the collection configuration, pointing curModel and
// curDeck at the generated note type and deck.
func encodeConf(modelID, deckID int64) (string, error) {
	conf := map[string]any{
		"activeDecks":   []int64{deckID},
		"curDeck":       deckID,
		"curModel":      fmt.Sprintf("%d", modelID),
		"newSpread":     0,
		"collapseTime":  1200,
		"timeLim":       0,
		"estTimes":      true,
		"dueCounts":     true,
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"nextPos":       1,
	}

	out, err := json.Marshal(conf)
	if err != nil {
		return "", fmt.Errorf("failed to encode collection configuration: %w", err)
	}
	return string(out), nil
}
