package dicescore

import "testing"

func TestScoreCategory(t *testing.T) {
	tests := []struct {
		name     string
		dice     [5]int
		category Category
		want     int
	}{
		{"ones counts matching faces", [5]int{1, 1, 1, 2, 3}, CategoryOnes, 3},
		{"twos counts matching faces", [5]int{1, 1, 1, 2, 3}, CategoryTwos, 2},
		{"upper category with no matches", [5]int{2, 2, 3, 3, 3}, CategoryFours, 0},

		{"three of a kind sums all dice", [5]int{1, 1, 1, 2, 3}, CategoryThreeOfAKind, 8},
		{"three of a kind needs three equal", [5]int{1, 1, 2, 2, 3}, CategoryThreeOfAKind, 0},
		{"four of a kind sums all dice", [5]int{4, 4, 4, 4, 2}, CategoryFourOfAKind, 18},
		{"four of a kind satisfied by five equal", [5]int{4, 4, 4, 4, 4}, CategoryFourOfAKind, 20},

		{"full house", [5]int{2, 2, 3, 3, 3}, CategoryFullHouse, 25},
		{"full house rejects two pairs", [5]int{2, 2, 3, 3, 4}, CategoryFullHouse, 0},
		{"full house accepts five equal", [5]int{6, 6, 6, 6, 6}, CategoryFullHouse, 25},

		{"small straight run of four", [5]int{2, 3, 4, 5, 5}, CategorySmallStraight, 30},
		{"small straight within large", [5]int{1, 2, 3, 4, 5}, CategorySmallStraight, 30},
		{"small straight needs four in a row", [5]int{1, 2, 3, 5, 6}, CategorySmallStraight, 0},
		{"large straight low run", [5]int{1, 2, 3, 4, 5}, CategoryLargeStraight, 40},
		{"large straight high run", [5]int{2, 3, 4, 5, 6}, CategoryLargeStraight, 40},
		{"large straight rejects run of four", [5]int{2, 3, 4, 5, 5}, CategoryLargeStraight, 0},

		{"yahtzee", [5]int{4, 4, 4, 4, 4}, CategoryYahtzee, 50},
		{"yahtzee needs five equal", [5]int{4, 4, 4, 4, 2}, CategoryYahtzee, 0},
		{"chance sums all dice", [5]int{6, 6, 5, 5, 4}, CategoryChance, 26},
		{"unmatched category scores zero", [5]int{1, 1, 1, 2, 3}, CategoryYahtzee, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScoreCategory(tc.category, tc.dice); got != tc.want {
				t.Fatalf("ScoreCategory(%s, %v) = %d, want %d", tc.category, tc.dice, got, tc.want)
			}
		})
	}
}

func fillUpper(card *Scorecard, ones, twos, threes, fours, fives, sixes int) {
	card.Fill(CategoryOnes, ones)
	card.Fill(CategoryTwos, twos)
	card.Fill(CategoryThrees, threes)
	card.Fill(CategoryFours, fours)
	card.Fill(CategoryFives, fives)
	card.Fill(CategorySixes, sixes)
}

func TestScorecardTotals(t *testing.T) {
	card := NewScorecard()
	fillUpper(card, 3, 6, 9, 12, 15, 18)
	card.Fill(CategoryYahtzee, 50)
	card.Fill(CategoryChance, 22)

	if card.UpperTotal != 63 {
		t.Fatalf("upper = %d, want 63", card.UpperTotal)
	}
	if card.Bonus != 35 {
		t.Fatalf("bonus = %d, want 35", card.Bonus)
	}
	if card.LowerTotal != 72 {
		t.Fatalf("lower = %d, want 72", card.LowerTotal)
	}
	want := card.UpperTotal + card.Bonus + card.LowerTotal
	if card.GrandTotal != want {
		t.Fatalf("grand = %d, want %d", card.GrandTotal, want)
	}
}

func TestScorecardBonusBoundary(t *testing.T) {
	below := NewScorecard()
	fillUpper(below, 2, 6, 9, 12, 15, 18)
	if below.UpperTotal != 62 || below.Bonus != 0 {
		t.Fatalf("upper %d bonus %d, want 62 and 0", below.UpperTotal, below.Bonus)
	}

	at := NewScorecard()
	fillUpper(at, 3, 6, 9, 12, 15, 18)
	if at.UpperTotal != 63 || at.Bonus != 35 {
		t.Fatalf("upper %d bonus %d, want 63 and 35", at.UpperTotal, at.Bonus)
	}
}

func TestScorecardComplete(t *testing.T) {
	card := NewScorecard()
	if card.Complete() {
		t.Fatal("empty scorecard reported complete")
	}
	for _, c := range Categories[:len(Categories)-1] {
		card.Fill(c, 0)
	}
	if card.Complete() {
		t.Fatal("scorecard with one open category reported complete")
	}
	card.Fill(Categories[len(Categories)-1], 0)
	if !card.Complete() {
		t.Fatal("full scorecard not reported complete")
	}
}

func TestScorecardCloneIsDeep(t *testing.T) {
	card := NewScorecard()
	card.Fill(CategoryChance, 20)

	dup := card.clone()
	dup.Fill(CategoryYahtzee, 50)

	if card.Has(CategoryYahtzee) {
		t.Fatal("filling the clone leaked into the original")
	}
	if dup.GrandTotal != 70 || card.GrandTotal != 20 {
		t.Fatalf("grand totals = %d and %d, want 70 and 20", dup.GrandTotal, card.GrandTotal)
	}
}

func TestCategoryKnown(t *testing.T) {
	for _, c := range Categories {
		if !c.Known() {
			t.Fatalf("category %s not recognized", c)
		}
	}
	if Category("threes_of_a_kind").Known() {
		t.Fatal("bogus category recognized")
	}
}
