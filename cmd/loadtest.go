package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

// LoadTestConfig holds configuration for registration load testing
type LoadTestConfig struct {
	BaseURL         string
	Token           string
	CourseID        string
	ConcurrentUsers int
	RequestsPerUser int
}

// LoadTestResult holds the results of load testing
type LoadTestResult struct {
	TotalRequests     int
	SuccessfulReqs    int
	RejectedReqs      int
	FailedReqs        int
	AvgResponseTimeMs float64
	MaxResponseTimeMs int64
	MinResponseTimeMs int64
	ThroughputRPS     float64
	ErrorsByType      map[string]int
}

// LoadTester fires concurrent registrations at a single course to
// exercise the capacity lock under contention.
type LoadTester struct {
	config    LoadTestConfig
	client    *http.Client
	results   LoadTestResult
	mutex     sync.Mutex
	startTime time.Time
}

// NewLoadTester creates a new load tester
func NewLoadTester(config LoadTestConfig) *LoadTester {
	return &LoadTester{
		config: config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		results: LoadTestResult{
			ErrorsByType: make(map[string]int),
		},
	}
}

// RunLoadTest executes the load test
func (lt *LoadTester) RunLoadTest() {
	fmt.Printf("Starting load test with %d concurrent users...\n", lt.config.ConcurrentUsers)

	lt.startTime = time.Now()
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, lt.config.ConcurrentUsers)
	totalRequests := lt.config.ConcurrentUsers * lt.config.RequestsPerUser

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)

		go func(requestID int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			lt.attemptRegistration(requestID)
		}(i)

		// Small delay between request starts to simulate realistic user behavior
		time.Sleep(10 * time.Millisecond)
	}

	wg.Wait()

	lt.calculateMetrics()
	lt.printResults()
}

// attemptRegistration submits one registration with synthetic child data
func (lt *LoadTester) attemptRegistration(requestID int) {
	startTime := time.Now()

	dob := time.Now().AddDate(-9, 0, -requestID%300).Format("2006-01-02")
	reqBody := map[string]interface{}{
		"course_id":               lt.config.CourseID,
		"child_first_name":        fmt.Sprintf("Load%04d", requestID),
		"child_last_name":         "Tester",
		"child_date_of_birth":     dob,
		"emergency_contact_name":  "Load Test Guardian",
		"emergency_contact_phone": "+15555550100",
		"agreed_to_terms":         true,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		lt.recordError("json_marshal")
		return
	}

	url := fmt.Sprintf("%s/api/v1/registrations", lt.config.BaseURL)
	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		lt.recordError("build_request")
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+lt.config.Token)

	resp, err := lt.client.Do(httpReq)
	responseTime := time.Since(startTime)

	if err != nil {
		lt.recordError("http_request")
		return
	}
	defer resp.Body.Close()

	lt.recordResponse(resp.StatusCode, responseTime)
}

// recordResponse records the response metrics
func (lt *LoadTester) recordResponse(statusCode int, responseTime time.Duration) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	lt.results.TotalRequests++
	responseTimeMs := responseTime.Milliseconds()

	if lt.results.MaxResponseTimeMs < responseTimeMs {
		lt.results.MaxResponseTimeMs = responseTimeMs
	}
	if lt.results.MinResponseTimeMs == 0 || lt.results.MinResponseTimeMs > responseTimeMs {
		lt.results.MinResponseTimeMs = responseTimeMs
	}

	currentAvg := lt.results.AvgResponseTimeMs
	currentCount := float64(lt.results.TotalRequests)
	lt.results.AvgResponseTimeMs = (currentAvg*(currentCount-1) + float64(responseTimeMs)) / currentCount

	switch {
	case statusCode >= 200 && statusCode < 300:
		lt.results.SuccessfulReqs++
	case statusCode == http.StatusBadRequest:
		// Capacity or eligibility rejection; the interesting number under contention
		lt.results.RejectedReqs++
	default:
		lt.results.FailedReqs++
		lt.results.ErrorsByType[fmt.Sprintf("http_%d", statusCode)]++
	}
}

func (lt *LoadTester) recordError(errorType string) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	lt.results.TotalRequests++
	lt.results.FailedReqs++
	lt.results.ErrorsByType[errorType]++
}

func (lt *LoadTester) calculateMetrics() {
	totalDuration := time.Since(lt.startTime)
	lt.results.ThroughputRPS = float64(lt.results.TotalRequests) / totalDuration.Seconds()
}

// printResults displays the load test results
func (lt *LoadTester) printResults() {
	fmt.Println("\n" + strings.Repeat("=", 80))

	fmt.Printf("Test Configuration:\n")
	fmt.Printf("  - Target Course: %s\n", lt.config.CourseID)
	fmt.Printf("  - Concurrent Users: %d\n", lt.config.ConcurrentUsers)
	fmt.Printf("  - Requests per User: %d\n", lt.config.RequestsPerUser)

	fmt.Printf("\nOverall Performance:\n")
	fmt.Printf("  - Total Requests: %d\n", lt.results.TotalRequests)
	fmt.Printf("  - Successful: %d (%.2f%%)\n",
		lt.results.SuccessfulReqs,
		float64(lt.results.SuccessfulReqs)/float64(lt.results.TotalRequests)*100)
	fmt.Printf("  - Rejected (full/ineligible): %d (%.2f%%)\n",
		lt.results.RejectedReqs,
		float64(lt.results.RejectedReqs)/float64(lt.results.TotalRequests)*100)
	fmt.Printf("  - Failed: %d (%.2f%%)\n",
		lt.results.FailedReqs,
		float64(lt.results.FailedReqs)/float64(lt.results.TotalRequests)*100)

	fmt.Printf("\nResponse Time Metrics:\n")
	fmt.Printf("  - Average: %.2f ms\n", lt.results.AvgResponseTimeMs)
	fmt.Printf("  - Minimum: %d ms\n", lt.results.MinResponseTimeMs)
	fmt.Printf("  - Maximum: %d ms\n", lt.results.MaxResponseTimeMs)

	fmt.Printf("\nThroughput:\n")
	fmt.Printf("  - Requests per Second: %.2f\n", lt.results.ThroughputRPS)

	if len(lt.results.ErrorsByType) > 0 {
		fmt.Printf("\nError Breakdown:\n")
		for errorType, count := range lt.results.ErrorsByType {
			fmt.Printf("  - %s: %d\n", errorType, count)
		}
	}
}

var loadtestCmd = &cobra.Command{
	Use:   "loadtest",
	Short: "Run load tests against the registration API",
	Long: `Fire concurrent registration requests at a single course to verify
that capacity enforcement holds under contention. Expects a running
server, a valid bearer token and the target course ID. Successful
registrations plus rejections should account for every request, and
successful registrations must never exceed the course capacity.`,
	Run: func(cmd *cobra.Command, args []string) {
		runLoadTest()
	},
}

var (
	baseURL         string
	authToken       string
	targetCourseID  string
	concurrentUsers int
	requestsPerUser int
)

func init() {
	rootCmd.AddCommand(loadtestCmd)

	loadtestCmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the registration API")
	loadtestCmd.Flags().StringVar(&authToken, "token", "", "Bearer token of the account registering")
	loadtestCmd.Flags().StringVar(&targetCourseID, "course", "", "Course ID to register against")
	loadtestCmd.Flags().IntVar(&concurrentUsers, "concurrent", 50, "Number of concurrent users")
	loadtestCmd.Flags().IntVar(&requestsPerUser, "requests", 5, "Number of requests per user")
	loadtestCmd.MarkFlagRequired("token")
	loadtestCmd.MarkFlagRequired("course")
}

func runLoadTest() {
	config := LoadTestConfig{
		BaseURL:         baseURL,
		Token:           authToken,
		CourseID:        targetCourseID,
		ConcurrentUsers: concurrentUsers,
		RequestsPerUser: requestsPerUser,
	}

	loadTester := NewLoadTester(config)

	fmt.Println("RoboCamp Registration Load Test")
	fmt.Println("===============================")

	loadTester.RunLoadTest()
}
