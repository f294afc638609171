package searcher

// Search depths in plies

const MinimaxDepth = 3
const AlphaBetaDepth = 4
