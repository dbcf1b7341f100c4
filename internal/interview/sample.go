package interview

// SampleCSV is the embedded seven-participant study dataset. `saltlens init`
// writes it as the starter data file; tests use it as the reference fixture.
const SampleCSV = `participant_id,alias,age,gender,income,location,education,usage_frequency,purchase_reason,price_perception,taste_perception,visual_expectation,would_recommend,primary_jtbd,key_pain_point,interview_date,sat_awareness,sat_consideration,sat_purchase,sat_usage,sat_loyalty
P001,Stone,35,F,300000,Toronto,Bachelors,once,gift/curiosity,too_high,no_difference,not_mentioned,50-50,social_bonding,no_taste_difference,2025-01-15,4,3,4,2,3
P002,Paul_A,69,F,50000,Cleveland,Post-grad,twice_weekly,interesting,price_concern,no_difference,not_very_blue,yes,gratification,not_blue_enough,2025-01-16,4,4,3,3,3
P003,Paul_B,70,M,300000,Cleveland,Post-grad,once_weekly,excitement/worth_try,wants_reduction,impressed,blue_speckles_nice,yes,social_bonding,price,2025-01-16,4,3,4,3,4
P004,Matt,35,M,80000,Tennessee,Bachelors,daily,health_benefits,high,crispier_taste,not_blue_enough,yes,healthy_meal,not_blue_enough,2025-01-17,4,3,3,2,2
P005,Leilani,44,M,235000,Texas,Masters,special_occasions,uniqueness,acceptable,enjoyed_taste,not_as_blue,yes,social_bonding,sourcing_concerns,2025-01-18,3,3,4,2,3
P006,Sienna,37,F,100000,Canada,Post-grad,regular,health_trends,regular_price,loves_quality,not_mentioned,yes_but_skeptical,healthy_meal,needs_evidence,2025-01-19,4,4,3,2,3
P007,Nadia,47,F,250000,Canada,Graduate,every_other_day,friend_recommendation,not_sensitive,better_than_others,not_mentioned,yes,gratification,reminder_to_buy,2025-01-20,3,3,4,2,3
`
