package club

import "sort"

// pointsFor converts a rank into points. Rank 0, or any rank outside the
// point list, earns nothing.
func pointsFor(points []int, rank int) int {
	if rank < 1 || rank > len(points) {
		return 0
	}
	return points[rank-1]
}

// LiveScores tallies the ballots cast so far into a leaderboard, best first.
// Equal scores keep suggestion order. This is a display projection of the
// round; the authoritative winner is chosen by PickWinner when voting closes.
func LiveScores(round Round, points []int) []Score {
	board := make([]Score, len(round.Suggestions))
	index := make(map[string]int, len(round.Suggestions))
	for i, s := range round.Suggestions {
		board[i] = Score{Item: s}
		index[s.Title] = i
	}

	for _, ranking := range round.Votes {
		for title, rank := range ranking {
			i, ok := index[title]
			if !ok {
				continue
			}
			board[i].Points += pointsFor(points, rank)
		}
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Points > board[j].Points
	})
	return board
}

// PickWinner returns the suggestion with the highest score. Ties go to the
// suggestion offered first, so a round with no ballots picks the first one.
func PickWinner(round Round, points []int) (Item, bool) {
	board := LiveScores(round, points)
	if len(board) == 0 {
		return Item{}, false
	}
	return board[0].Item, true
}
