package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// signupPayload registers a throwaway donor account for the test run
type signupPayload struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Password      string `json:"password"`
	Address       string `json:"address"`
	UserType      string `json:"userType"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// donationPayload is the submission body
type donationPayload struct {
	Type    string          `json:"type"`
	Address string          `json:"address"`
	Details donationDetails `json:"details"`
}

type donationDetails struct {
	FoodItem           string `json:"foodItem,omitempty"`
	FoodQuantity       string `json:"foodQuantity,omitempty"`
	DietaryType        string `json:"dietaryType,omitempty"`
	ExpiryWindow       string `json:"expiryWindow,omitempty"`
	ClothesDescription string `json:"clothesDescription,omitempty"`
	MoneyAmount        string `json:"moneyAmount,omitempty"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	ScenarioStats      map[string]int // Track requests per scenario
	Lock               sync.Mutex
}

// SubmissionScenario defines a donation submission scenario
type SubmissionScenario struct {
	Name    string // For stats tracking
	Payload donationPayload
}

func main() {
	// Define command line flags
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	// Define donation scenarios
	scenarios := []SubmissionScenario{
		{"Food Veg", donationPayload{Type: "Food", Address: "12 Relief Road", Details: donationDetails{
			FoodItem: "Rice and dal", FoodQuantity: "10 servings", DietaryType: "Vegetarian", ExpiryWindow: "6 hours",
		}}},
		{"Food Vegan", donationPayload{Type: "Food", Address: "12 Relief Road", Details: donationDetails{
			FoodItem: "Fruit baskets", FoodQuantity: "5 baskets", DietaryType: "Vegan", ExpiryWindow: "12 hours",
		}}},
		{"Clothes", donationPayload{Type: "Clothes", Address: "44 Shelter Lane", Details: donationDetails{
			ClothesDescription: "20 winter jackets, adult sizes",
		}}},
		{"Money Small", donationPayload{Type: "Money", Address: "Online", Details: donationDetails{
			MoneyAmount: "100.00",
		}}},
		{"Money Large", donationPayload{Type: "Money", Address: "Online", Details: donationDetails{
			MoneyAmount: "500.00",
		}}},
	}

	fmt.Printf("Load testing donation submissions with %d scenarios\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	// Initialize test statistics
	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour, // Start with a high value that will be replaced
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		ScenarioStats:   make(map[string]int),
	}

	// Initialize stats for each scenario
	for _, scenario := range scenarios {
		stats.ScenarioStats[scenario.Name] = 0
	}

	// Channel to collect results
	results := make(chan TestResult, *totalRequests)

	// Channel to distribute work
	jobs := make(chan int, *totalRequests)

	// Start worker goroutines, each with its own donor account
	var wg sync.WaitGroup
	fmt.Println("Starting worker goroutines...")
	runID := time.Now().UnixNano()
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			worker(workerID, runID, *baseURL, *delayMs, scenarios, jobs, results, stats)
		}(i)
	}

	// Fill the jobs channel
	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	// Start a goroutine to collect results
	go func() {
		for result := range results {
			stats.Lock.Lock()
			if result.Success {
				stats.SuccessfulRequests++
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime

			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	// Start the timer
	startTime := time.Now()
	fmt.Println("Test running...")

	// Print progress periodically
	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	// Wait for all workers to finish
	wg.Wait()
	close(results)
	ticker.Stop()

	// Calculate the total test time
	stats.TotalTime = time.Since(startTime)

	// Print results
	printResults(stats)
}

// authenticate registers a donor for this worker and returns a session token
func authenticate(client *http.Client, baseURL string, workerID int, runID int64) (string, error) {
	email := fmt.Sprintf("loadtest-%d-%d@helphub.local", runID, workerID)
	password := "loadtest-secret"

	signup := signupPayload{
		Name:     fmt.Sprintf("Load Tester %d", workerID),
		Email:    email,
		Password: password,
		Address:  "1 Benchmark Street",
		UserType: "individual",
	}
	body, _ := json.Marshal(signup)
	resp, err := client.Post(baseURL+"/api/auth/signup", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		return "", fmt.Errorf("signup failed with HTTP status %d", resp.StatusCode)
	}

	login, _ := json.Marshal(loginPayload{Email: email, Password: password})
	resp, err = client.Post(baseURL+"/api/auth/login", "application/json", bytes.NewBuffer(login))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with HTTP status %d", resp.StatusCode)
	}

	var loginResp loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return "", err
	}
	return loginResp.Token, nil
}

func worker(id int, runID int64, baseURL string, delayMs int,
	scenarios []SubmissionScenario, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	token, err := authenticate(client, baseURL, id, runID)
	if err != nil {
		// Fail this worker's share of jobs so the totals still add up
		for range jobs {
			results <- TestResult{Success: false, Error: err}
		}
		return
	}

	for range jobs {
		// Optional delay between requests to prevent rate limiting
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		// Randomly select a submission scenario
		scenario := scenarios[rand.Intn(len(scenarios))]

		// Update stats for which scenario was selected
		stats.Lock.Lock()
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		jsonData, err := json.Marshal(scenario.Payload)
		if err != nil {
			results <- TestResult{Success: false, Error: err}
			continue
		}

		// Create request
		req, err := http.NewRequest("POST", baseURL+"/api/donations/create", bytes.NewBuffer(jsonData))
		if err != nil {
			results <- TestResult{Success: false, Error: err}
			continue
		}

		// Set headers
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		// Send the request and measure response time
		startTime := time.Now()
		resp, err := client.Do(req)
		responseTime := time.Since(startTime)

		result := TestResult{
			ResponseTime: responseTime,
		}

		if err != nil {
			result.Success = false
			result.Error = err
		} else {
			statusCode := resp.StatusCode
			result.StatusCode = statusCode
			result.Success = (statusCode >= 200 && statusCode < 300)
			if !result.Success {
				result.Error = fmt.Errorf("HTTP status code %d", statusCode)
			}
			resp.Body.Close()
		}

		results <- result
	}
}

func printResults(stats *TestStats) {
	// Calculate theoretical TPS (ignores actual delays between requests)
	rawTps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()

	// Calculate TPS if all requests were successful
	theoreticalTps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	// Calculate average response time
	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	// Calculate percentiles
	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		// Sort the response times
		sortedTimes := make([]time.Duration, len(stats.ResponseTimes))
		copy(sortedTimes, stats.ResponseTimes)

		// Simple bubble sort (OK for small datasets)
		for i := 0; i < len(sortedTimes); i++ {
			for j := i + 1; j < len(sortedTimes); j++ {
				if sortedTimes[i] > sortedTimes[j] {
					sortedTimes[i], sortedTimes[j] = sortedTimes[j], sortedTimes[i]
				}
			}
		}

		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p95 = sortedTimes[len(sortedTimes)*95/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	// Print results
	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Raw TPS:             %.2f (successful requests / total time)\n", rawTps)
	fmt.Printf("Theoretical TPS:     %.2f (if all requests were successful)\n", theoreticalTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	// Print scenario distribution
	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	totalScenarios := 0
	for _, count := range stats.ScenarioStats {
		totalScenarios += count
	}
	for scenario, count := range stats.ScenarioStats {
		if count > 0 {
			fmt.Printf("%-15s: %d requests (%.1f%%)\n", scenario, count,
				float64(count)/float64(totalScenarios)*100)
		}
	}

	// Print error distribution if there were errors
	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}
}
