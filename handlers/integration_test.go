// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/barroqt/voting/db"
	"github.com/barroqt/voting/models"
	"github.com/barroqt/voting/registry"
	"github.com/barroqt/voting/testutil"
)

// TestFullBallotWorkflow tests the complete end-to-end workflow:
// 1. Create ballot
// 2. Whitelist two voters
// 3. Open proposal registration
// 4. Voter A registers a proposal
// 5. Close proposal registration, open voting
// 6. Both voters vote for proposal 0
// 7. Close voting, count, tally
// 8. Verify winner and audit log
func TestFullBallotWorkflow(t *testing.T) {
	dbc := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	ballotHandler := NewBallotHandler(dbc, cfg)
	votingHandler := NewVotingHandler(dbc, cfg)
	resultsHandler := NewResultsHandler(dbc, cfg)

	// Step 1: Create a ballot
	req := testutil.MakeRequest("POST", "/ballots",
		models.CreateBallotRequest{Title: "Team Offsite", AdminID: "alice"}, nil)
	w := httptest.NewRecorder()
	ballotHandler.CreateBallot(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create ballot failed: %d - %s", w.Code, w.Body.String())
	}

	var created models.CreateBallotResponse
	testutil.AssertJSON(t, w, &created)
	ballotID := created.BallotID
	adminKey := created.AdminKey
	admin := map[string]string{"X-Admin-Key": adminKey}
	t.Logf("Step 1 - Created ballot: %s", ballotID)

	// Step 2: Whitelist voterA and voterB
	for _, voter := range []string{"voterA", "voterB"} {
		req := testutil.MakeRequest("POST", "/ballots/"+ballotID+"/voters",
			models.WhitelistVoterRequest{VoterID: voter}, admin)
		req.SetPathValue("id", ballotID)
		w := httptest.NewRecorder()
		ballotHandler.WhitelistVoter(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Whitelist %s failed: %d - %s", voter, w.Code, w.Body.String())
		}
	}

	// A non-admin cannot advance the phase
	req = testutil.MakeRequest("POST", "/ballots/"+ballotID+"/proposals/start", nil,
		map[string]string{"X-Admin-Key": "not-the-admin"})
	req.SetPathValue("id", ballotID)
	w = httptest.NewRecorder()
	ballotHandler.StartProposals(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// The admin cannot whitelist itself
	req = testutil.MakeRequest("POST", "/ballots/"+ballotID+"/voters",
		models.WhitelistVoterRequest{VoterID: "alice"}, admin)
	req.SetPathValue("id", ballotID)
	w = httptest.NewRecorder()
	ballotHandler.WhitelistVoter(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Step 3: Open proposal registration
	req = testutil.MakeRequest("POST", "/ballots/"+ballotID+"/proposals/start", nil, admin)
	req.SetPathValue("id", ballotID)
	w = httptest.NewRecorder()
	ballotHandler.StartProposals(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Start proposals failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 4: voterA registers "Proposal X"
	req = testutil.MakeRequest("POST", "/ballots/"+ballotID+"/proposals",
		models.RegisterProposalRequest{Description: "Proposal X"},
		map[string]string{"X-Voter-ID": "voterA"})
	req.SetPathValue("id", ballotID)
	w = httptest.NewRecorder()
	votingHandler.RegisterProposal(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 4 - Register proposal failed: %d - %s", w.Code, w.Body.String())
	}
	var proposal models.RegisterProposalResponse
	testutil.AssertJSON(t, w, &proposal)
	if proposal.ProposalID != 0 {
		t.Fatalf("Step 4 - Proposal ID = %d, want 0", proposal.ProposalID)
	}

	// An unregistered caller cannot register a proposal
	req = testutil.MakeRequest("POST", "/ballots/"+ballotID+"/proposals",
		models.RegisterProposalRequest{Description: "intruder"},
		map[string]string{"X-Voter-ID": "mallory"})
	req.SetPathValue("id", ballotID)
	w = httptest.NewRecorder()
	votingHandler.RegisterProposal(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Step 5: Close proposals, open the voting session
	for _, path := range []string{"proposals/end", "voting/start"} {
		req := testutil.MakeRequest("POST", "/ballots/"+ballotID+"/"+path, nil, admin)
		req.SetPathValue("id", ballotID)
		w := httptest.NewRecorder()
		if path == "proposals/end" {
			ballotHandler.EndProposals(w, req)
		} else {
			ballotHandler.StartVoting(w, req)
		}
		if w.Code != http.StatusOK {
			t.Fatalf("Step 5 - %s failed: %d - %s", path, w.Code, w.Body.String())
		}
	}

	// Step 6: Both voters vote for proposal 0
	for _, voter := range []string{"voterA", "voterB"} {
		req := testutil.MakeRequest("POST", "/ballots/"+ballotID+"/votes",
			models.CastVoteRequest{ProposalID: 0},
			map[string]string{"X-Voter-ID": voter})
		req.SetPathValue("id", ballotID)
		w := httptest.NewRecorder()
		votingHandler.CastVote(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 6 - Vote by %s failed: %d - %s", voter, w.Code, w.Body.String())
		}
	}

	// voterA cannot vote twice
	req = testutil.MakeRequest("POST", "/ballots/"+ballotID+"/votes",
		models.CastVoteRequest{ProposalID: 0},
		map[string]string{"X-Voter-ID": "voterA"})
	req.SetPathValue("id", ballotID)
	w = httptest.NewRecorder()
	votingHandler.CastVote(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	// Step 7: Close voting, count, tally
	req = testutil.MakeRequest("POST", "/ballots/"+ballotID+"/voting/end", nil, admin)
	req.SetPathValue("id", ballotID)
	w = httptest.NewRecorder()
	ballotHandler.EndVoting(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - End voting failed: %d - %s", w.Code, w.Body.String())
	}

	req = testutil.MakeRequest("POST", "/ballots/"+ballotID+"/count", nil, admin)
	req.SetPathValue("id", ballotID)
	w = httptest.NewRecorder()
	resultsHandler.CountVotes(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Count votes failed: %d - %s", w.Code, w.Body.String())
	}
	var counted models.CountVotesResponse
	testutil.AssertJSON(t, w, &counted)
	if counted.WinningProposalID != 0 {
		t.Fatalf("Step 7 - Winner = %d, want 0", counted.WinningProposalID)
	}

	req = testutil.MakeRequest("POST", "/ballots/"+ballotID+"/tally", nil, admin)
	req.SetPathValue("id", ballotID)
	w = httptest.NewRecorder()
	ballotHandler.Tally(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Tally failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 8: Winner is "Proposal X" with 2 votes
	req = testutil.MakeRequest("GET", "/ballots/"+ballotID+"/winner", nil, nil)
	req.SetPathValue("id", ballotID)
	w = httptest.NewRecorder()
	resultsHandler.GetWinner(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 8 - Get winner failed: %d - %s", w.Code, w.Body.String())
	}
	var winner models.WinnerResponse
	testutil.AssertJSON(t, w, &winner)
	if winner.Description != "Proposal X" || winner.VoteCount != 2 {
		t.Errorf("Step 8 - Winner = %+v, want Proposal X with 2 votes", winner)
	}

	req = testutil.MakeRequest("GET", "/ballots/"+ballotID+"/proposals/0/votes", nil, nil)
	req.SetPathValue("id", ballotID)
	req.SetPathValue("proposalID", "0")
	w = httptest.NewRecorder()
	resultsHandler.GetProposalVotes(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// The audit log recorded the whole workflow in order
	events, err := db.ListEvents(dbc, ballotID)
	if err != nil {
		t.Fatalf("Step 8 - List events: %v", err)
	}
	wantKinds := []string{
		registry.KindVoterRegistered, // voterA
		registry.KindVoterRegistered, // voterB
		registry.KindStatusChanged,   // proposals started
		registry.KindProposalRegistered,
		registry.KindStatusChanged, // proposals ended
		registry.KindStatusChanged, // voting started
		registry.KindVoteCast,      // voterA
		registry.KindVoteCast,      // voterB
		registry.KindStatusChanged, // voting ended
		registry.KindStatusChanged, // tallied
	}
	if len(events) != len(wantKinds) {
		t.Fatalf("Step 8 - Audit log has %d events, want %d", len(events), len(wantKinds))
	}
	for i, want := range wantKinds {
		if events[i].Kind != want {
			t.Errorf("Step 8 - Event %d kind = %q, want %q", i, events[i].Kind, want)
		}
	}
}
