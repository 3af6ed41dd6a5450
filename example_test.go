package counter_test

import (
	"os"

	"github.com/rezbow/counter"
)

func ExampleButton() {
	count := 5
	p := counter.Props{
		Count:           count,
		HandleIncrement: func() { count++ },
	}
	counter.Button("counter--increment", p).Render(os.Stdout)
	// Output: <button class="counter-button" live-click="counter--increment">5</button>
}
