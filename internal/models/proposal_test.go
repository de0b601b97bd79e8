package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowedProposalTransitionsAreClosed(t *testing.T) {
	for status, transitions := range AllowedProposalTransitions {
		for _, next := range transitions {
			require.Contains(t, AllowedProposalTransitions, next,
				"transition %s -> %s leads to a status without transition rules", status, next)
		}
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	require.Empty(t, AllowedProposalTransitions[ReviewedProposal])
	require.Empty(t, AllowedProposalTransitions[RejectedProposal])
}

func TestRejectionIsOnlyPossibleBeforeAcceptance(t *testing.T) {
	rejectable := map[ProposalStatus]bool{}
	for status, transitions := range AllowedProposalTransitions {
		for _, next := range transitions {
			if next == RejectedProposal {
				rejectable[status] = true
			}
		}
	}
	require.Equal(t, map[ProposalStatus]bool{
		PendingProposal:        true,
		AwaitingCertsProposal:  true,
		CertsSubmittedProposal: true,
	}, rejectable)
}
