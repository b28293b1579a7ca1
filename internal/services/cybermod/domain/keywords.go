package domain

// Keyword lists are matched case-insensitively as substrings of the item
// name and description. English and French labels are both accepted.
var (
	slickwareKeywords = []string{
		"interface de piratage",
		"hack interface",
		"prise slick",
		"slicksocket",
	}

	cyberwareKeywords = []string{
		"yeux améliorés", "improved eyes",
		"analyseur médical", "medical scanner",
		"système ogre", "ogre system",
		"muscles synthétiques", "synth muscle",
		"émetteur", "transmitter",
		"boîte noire", "black box",
		"peau protectrice", "cloakskin",
		"grand interrupteur", "big switch",
		"crocs", "fangs",
		"canon à main", "handcannon",
		"lame intégrée", "integrated blade",
		"neural interface", "interface neurale",
	}

	slicksocketKeywords = []string{
		"slicksocket",
		"prise slick",
		"interface de piratage",
		"interface piratage",
		"piratage interface",
		"slick socket",
		"socket slick",
	}

	skillwareKeywords = []string{
		"skillware",
		"skill ware",
		"compétence logicielle",
		"module de compétence",
		"expertise logicielle",
	}
)

// Rank keywords, checked from the most specific family first so that
// "untrained" never reads as "trained".
var (
	untrainedRankKeywords = []string{"untrained", "non-entrainé", "non entrainé", "rank 1", "rang 1", "niveau 1"}
	expertRankKeywords    = []string{"expert", "rank 3", "rang 3", "niveau 3"}
	trainedRankKeywords   = []string{"trained", "entrainé", "rank 2", "rang 2", "niveau 2"}
)

// Prerequisite synonym families. A requirement token mentioning any word of
// a family is satisfied by an installed cybermod whose name mentions any
// word of the same family.
var prerequisiteFamilies = [][]string{
	{"bras", "arm"},
	{"interface", "neural"},
	{"système", "system"},
}
