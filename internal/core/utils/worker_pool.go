package utils

import "sync"

type CompletedTask[T any] struct {
	Index  int
	Result T
	Error  error
}

// RunInPool runs worker over every item of inputs with at most maxWorkers
// goroutines. Completed tasks are sent to completed in completion order, each
// tagged with the index of its input; completed is closed once all are done.
func RunInPool[In any, Out any](worker func(In) (Out, error), inputs []In, completed chan CompletedTask[Out], maxWorkers int) {
	queue := make(chan int, len(inputs))
	for i := range inputs {
		queue <- i
	}
	close(queue)

	workers := max(min(len(inputs), maxWorkers), 1)

	go func() {
		wg := sync.WaitGroup{}
		wg.Add(workers)

		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()

				for idx := range queue {
					res, err := worker(inputs[idx])
					completed <- CompletedTask[Out]{Index: idx, Result: res, Error: err}
				}
			}()
		}

		wg.Wait()

		close(completed)
	}()
}
