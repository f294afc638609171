package engine

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"othello/experiments/metrics"
	"othello/game"
	"othello/server"

	"github.com/pkg/errors"
)

// RemoteAgent asks an othello server's /findmove endpoint for its moves.
type RemoteAgent struct {
	URL      string
	Strategy string
	Depth    int
	Client   *http.Client
}

func NewRemoteAgent(url, strategy string) *RemoteAgent {
	return &RemoteAgent{
		URL:      strings.TrimSuffix(url, "/"),
		Strategy: strategy,
		Client:   http.DefaultClient,
	}
}

func (a *RemoteAgent) FindMove(b game.Board, side game.Side) (int, metrics.SearchMetric, error) {
	if b.LegalMoves(side).Len() == 0 {
		return game.NoMove, metrics.SearchMetric{}, nil
	}

	body, err := json.Marshal(server.FindMoveRequest{
		Layout:   b.Layout(),
		Side:     side.Symbol(),
		Strategy: a.Strategy,
		Depth:    a.Depth,
	})
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, errors.WithStack(err)
	}

	resp, err := a.Client.Post(a.URL+"/findmove", "application/json", bytes.NewReader(body))
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, errors.Wrap(err, "failed to reach agent")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.NoMove, metrics.SearchMetric{}, errors.Errorf("agent returned status %d: %s", resp.StatusCode, out)
	}

	var envelope struct {
		Extras server.FindMoveResponse `json:"extras"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return game.NoMove, metrics.SearchMetric{}, errors.Wrap(err, "failed to decode agent response")
	}
	metric := metrics.SearchMetric{Strategy: a.Strategy, Depth: a.Depth, Nodes: envelope.Extras.Nodes}
	return envelope.Extras.Move, metric, nil
}
