package engine

import "sort"

// Scenarios are canned technician write-ups for demos and smoke tests. The
// texts intentionally hit different classifier groups; most target a single
// group so each symptom area has a one-command demo.
var Scenarios = map[string]string{
	"alternator-brakes-tires": "Alternator tested bad, rear brakes 3mm, tires 4/32, no history of spark plug service, " +
		"due for timing belt service by mileage and age.",
	"charging-fault": "Battery light on at idle, alternator output reading low, dim lights at every stop.",
	"engine-tune-up": "Rough idle and misfire under load, spark plugs original at 95k miles, due for a tune up.",
	"front-suspension": "Clunk over speed bumps, front struts leaking, control arm bushings cracked, " +
		"recommend strut replacement.",
	"oil-leak": "Burning smell after highway driving, oil dripping onto the exhaust manifold, " +
		"valve cover gasket seeping.",
	"overheating":      "Overheating in stop-and-go traffic, coolant low, radiator fins crusted, customer tops off weekly.",
	"rear-brake-job":   "Rear brakes 2mm, pulsation felt, recommend rear brake pads and rotors.",
	"tire-replacement": "Tires are 3/32, customer reports vibration at highway speeds, recommend 4 new tires and balance.",
}

// Scenario looks up a canned write-up by name.
func Scenario(name string) (string, bool) {
	text, ok := Scenarios[name]
	return text, ok
}

// ScenarioNames lists the available scenarios in stable order.
func ScenarioNames() []string {
	names := make([]string, 0, len(Scenarios))
	for name := range Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
