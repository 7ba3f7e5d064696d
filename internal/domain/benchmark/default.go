package benchmark

import "github.com/okian/brokerscore/internal/domain/model"

// DefaultVersion identifies the built-in snapshot.
const DefaultVersion = "2024-market-v1"

// Default returns the built-in market snapshot.
func Default() Statistics {
	return Statistics{
		Version: DefaultVersion,
		Source:  SourceStatic,
		Size:    72,
		Market: Profile{
			Total: 39.6,
			Categories: model.Categories{
				ResponseTime:        13.0,
				ServiceQuality:      10.1,
				ListingPresentation: 7.1,
				FollowUp:            3.2,
				ClientExperience:    6.2,
			},
			Scores: model.SubScores{
				FirstResponse:       8.4,
				BrokerHandoff:       2.3,
				AverageSpeed:        2.3,
				Personalization:     2.6,
				Professionalism:     3.3,
				ClientQualification: 1.7,
				Explanations:        2.5,
				QuantitySent:        2.2,
				CriteriaAdherence:   3.1,
				MaterialQuality:     1.8,
				Persistence:         2.0,
				FollowUpQuality:     1.2,
				Adaptability:        2.5,
				ObjectionHandling:   1.5,
				OverallEfficiency:   2.2,
			},
			FirstResponseAverage: "00:25:15",
			BrokerHandoffAverage: "01:05:46",
			MeanFollowUps:        1.3,
			MeanItemsSent:        2.4,
		},
		// Sub-criteria of the top group were recorded on a wider scale than the
		// per-criterion maxima; categories and total are on the engine scale.
		TopQuintile: Profile{
			Total: 76.8,
			Categories: model.Categories{
				ResponseTime:        21.6,
				ServiceQuality:      21.0,
				ListingPresentation: 16.8,
				FollowUp:            10.6,
				ClientExperience:    13.0,
			},
			Scores: model.SubScores{
				FirstResponse:       7.8,
				BrokerHandoff:       7.4,
				AverageSpeed:        6.8,
				Personalization:     7.2,
				Professionalism:     7.0,
				ClientQualification: 6.8,
				QuantitySent:        4.2,
				CriteriaAdherence:   8.1,
				MaterialQuality:     4.5,
				Persistence:         6.3,
				FollowUpQuality:     6.7,
				Adaptability:        6.1,
				ObjectionHandling:   5.9,
				OverallEfficiency:   4.5,
			},
			FirstResponseAverage: "00:07:18",
			BrokerHandoffAverage: "00:22:35",
			MeanFollowUps:        2.5,
		},
		Quartiles: Quartiles{Q1: 25, Q2: 40, Q3: 58},
		Outliers:  []float64{1, 5, 79, 81},
		MinTotal:  1,
		MaxTotal:  81,
	}
}
