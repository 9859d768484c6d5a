package dicescore

// Category identifies one scorecard entry.
type Category string

const (
	CategoryOnes   Category = "ones"
	CategoryTwos   Category = "twos"
	CategoryThrees Category = "threes"
	CategoryFours  Category = "fours"
	CategoryFives  Category = "fives"
	CategorySixes  Category = "sixes"

	CategoryThreeOfAKind  Category = "three_of_a_kind"
	CategoryFourOfAKind   Category = "four_of_a_kind"
	CategoryFullHouse     Category = "full_house"
	CategorySmallStraight Category = "small_straight"
	CategoryLargeStraight Category = "large_straight"
	CategoryYahtzee       Category = "yahtzee"
	CategoryChance        Category = "chance"
)

// Categories lists all thirteen categories in canonical order.
var Categories = []Category{
	CategoryOnes, CategoryTwos, CategoryThrees,
	CategoryFours, CategoryFives, CategorySixes,
	CategoryThreeOfAKind, CategoryFourOfAKind, CategoryFullHouse,
	CategorySmallStraight, CategoryLargeStraight, CategoryYahtzee,
	CategoryChance,
}

// faceValues maps the upper-section categories to the die face they count.
var faceValues = map[Category]int{
	CategoryOnes:   1,
	CategoryTwos:   2,
	CategoryThrees: 3,
	CategoryFours:  4,
	CategoryFives:  5,
	CategorySixes:  6,
}

const (
	upperBonusThreshold = 63
	upperBonusPoints    = 35

	fullHousePoints     = 25
	smallStraightPoints = 30
	largeStraightPoints = 40
	yahtzeePoints       = 50
)

// Known reports whether the category is one of the thirteen.
func (c Category) Known() bool {
	if _, upper := faceValues[c]; upper {
		return true
	}
	switch c {
	case CategoryThreeOfAKind, CategoryFourOfAKind, CategoryFullHouse,
		CategorySmallStraight, CategoryLargeStraight, CategoryYahtzee,
		CategoryChance:
		return true
	}
	return false
}

// Scorecard records one player's category scores. Filled holds only the
// categories already consumed; the totals are derived from it and
// recomputed on every fill.
type Scorecard struct {
	Filled     map[Category]int `json:"filled"`
	UpperTotal int              `json:"upper_total"`
	Bonus      int              `json:"bonus"`
	LowerTotal int              `json:"lower_total"`
	GrandTotal int              `json:"grand_total"`
}

// NewScorecard creates an empty scorecard.
func NewScorecard() *Scorecard {
	return &Scorecard{Filled: make(map[Category]int)}
}

// Has reports whether a category is already consumed.
func (s *Scorecard) Has(c Category) bool {
	_, ok := s.Filled[c]
	return ok
}

// Fill consumes a category with the given score and recomputes the totals.
func (s *Scorecard) Fill(c Category, score int) {
	if s.Filled == nil {
		s.Filled = make(map[Category]int)
	}
	s.Filled[c] = score
	s.recompute()
}

// Complete reports whether all thirteen categories are consumed.
func (s *Scorecard) Complete() bool {
	return len(s.Filled) == len(Categories)
}

// recompute rebuilds the derived totals from the category mapping. The
// bonus is exactly 35 when the upper-section sum reaches 63, else 0.
func (s *Scorecard) recompute() {
	upper, lower := 0, 0
	for c, score := range s.Filled {
		if _, ok := faceValues[c]; ok {
			upper += score
		} else {
			lower += score
		}
	}
	s.UpperTotal = upper
	s.LowerTotal = lower
	s.Bonus = 0
	if upper >= upperBonusThreshold {
		s.Bonus = upperBonusPoints
	}
	s.GrandTotal = upper + s.Bonus + lower
}

// clone deep-copies the scorecard, including the category mapping.
func (s *Scorecard) clone() *Scorecard {
	out := *s
	out.Filled = make(map[Category]int, len(s.Filled))
	for c, score := range s.Filled {
		out.Filled[c] = score
	}
	return &out
}

// ScoreCategory computes the score the given dice earn in a category.
func ScoreCategory(c Category, dice [5]int) int {
	var counts [7]int
	total := 0
	for _, d := range dice {
		if d >= 1 && d <= 6 {
			counts[d]++
		}
		total += d
	}

	if face, ok := faceValues[c]; ok {
		return counts[face] * face
	}

	switch c {
	case CategoryThreeOfAKind:
		if maxCount(counts) >= 3 {
			return total
		}
	case CategoryFourOfAKind:
		if maxCount(counts) >= 4 {
			return total
		}
	case CategoryFullHouse:
		if isFullHouse(counts) {
			return fullHousePoints
		}
	case CategorySmallStraight:
		if hasRun(counts, 4) {
			return smallStraightPoints
		}
	case CategoryLargeStraight:
		if hasRun(counts, 5) {
			return largeStraightPoints
		}
	case CategoryYahtzee:
		if maxCount(counts) == 5 {
			return yahtzeePoints
		}
	case CategoryChance:
		return total
	}
	return 0
}

func maxCount(counts [7]int) int {
	max := 0
	for _, n := range counts[1:] {
		if n > max {
			max = n
		}
	}
	return max
}

// isFullHouse accepts exactly three of one value and two of another, and
// also five of a kind.
func isFullHouse(counts [7]int) bool {
	hasThree, hasTwo := false, false
	for _, n := range counts[1:] {
		switch n {
		case 5:
			return true
		case 3:
			hasThree = true
		case 2:
			hasTwo = true
		}
	}
	return hasThree && hasTwo
}

// hasRun reports whether the distinct values contain a consecutive run of
// the given length.
func hasRun(counts [7]int, length int) bool {
	run := 0
	for face := 1; face <= 6; face++ {
		if counts[face] > 0 {
			run++
			if run >= length {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
