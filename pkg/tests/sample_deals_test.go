package tests_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"deal_dashboard/pkg/tests"
)

func TestSampleDealsDeterministic(t *testing.T) {
	rq := require.New(t)

	a := tests.NewSampleDeals(tests.NewSeededRandomizer(42)).Generate(50)
	b := tests.NewSampleDeals(tests.NewSeededRandomizer(42)).Generate(50)

	rq.Len(a, 50)
	rq.Equal(a, b)

	for _, d := range a {
		rq.NotEmpty(d.ID)
		rq.NotEmpty(d.BrokerName)

		if d.IsSettled() {
			rq.True(d.IsConverted(), d.ID)
		}
	}
}
