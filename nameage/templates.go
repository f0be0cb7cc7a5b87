// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

const (
	mortalityTmpl = `
set title 'Probability of death within one year, {{.RefYear}}'

set xlabel 'Age'
set ylabel 'Death probability'
set logscale y
set key top left
set grid

plot '{{.DataPath}}' using 1:2 with lines lc 'blue' lw 2 title 'Male', \
     '{{.DataPath}}' using 1:3 with lines lc 'red' lw 2 title 'Female'
`

	ageTmpl = `
set title 'Age distribution for "{{.Name}}, {{.Sex}}"'

set xlabel 'Birth year'
set ylabel 'Count'
set xrange [{{.First}}:{{.Last}}]
set yrange [0:*]
set key top left

set arrow from {{.Mean}},graph 0 to {{.Mean}},graph 1 nohead lc 'black' lw 2
set arrow from {{.Median}},graph 0 to {{.Median}},graph 1 nohead lc 'orange' lw 2
set arrow from {{.Low}},graph 0 to {{.Low}},graph 1 nohead lc 'purple' dt 2
set arrow from {{.High}},graph 0 to {{.High}},graph 1 nohead lc 'purple' dt 2

plot '{{.DataPath}}' using 1:3 with lines lc 'blue' lw 2 title 'Likely to be alive', \
     '{{.DataPath}}' using 1:2 with lines lc 'red' lw 2 title 'Total born', \
     NaN lc 'black' lw 2 title 'Mean', \
     NaN lc 'orange' lw 2 title 'Median', \
     NaN lc 'purple' dt 2 title 'Std. dev.'
`
)
