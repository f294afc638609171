// meta/meta.go
package meta

// NUM_GAMES defines the number of games an experiment plays.
const NUM_GAMES = 50

// MAX_TURNS caps the decisions of one game. Sixty moves with a pass between
// each stay below it.
const MAX_TURNS = 128

// SEARCH_DEPTH_LIMIT bounds the depth accepted from users.
const SEARCH_DEPTH_LIMIT = 8
