// Package ros holds the ROS message schema published by the imu publisher, an in-memory topic
// bus and helpers to read recorded rosbags.
package ros

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/edaniels/gobag/rosbag"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// ReadBag reads the contents of a rosbag into a gobag data structure.
func ReadBag(filename string) (*rosbag.RosBag, error) {
	//nolint:gosec
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open input file")
	}
	defer utils.UncheckedErrorFunc(f.Close)

	rb := rosbag.NewRosBag()

	if err := rb.Read(f); err != nil {
		return nil, errors.Wrapf(err, "unable to create ros bag, error")
	}

	return rb, nil
}

// BagTopicKey returns the key gobag files the JSON of a topic under: no leading slash, slashes
// replaced by underscores, lower case.
func BagTopicKey(topic string) string {
	topic = strings.TrimPrefix(topic, "/")
	return strings.ToLower(strings.ReplaceAll(topic, "/", "_"))
}

func topicJSON(rb *rosbag.RosBag, topic string) ([]byte, error) {
	if err := rb.ParseTopicsToJSON(
		"",
		func(int64) bool { return true },
		func(t string) bool { return t == topic },
		false,
	); err != nil {
		return nil, errors.Wrapf(err, "error while parsing bag to JSON")
	}

	msgs := rb.TopicsAsJSON[BagTopicKey(topic)]
	if msgs == nil {
		return nil, errors.Errorf("no messages for topic %s", topic)
	}

	var out bytes.Buffer
	for {
		line, err := msgs.ReadBytes('\n')
		out.Write(line)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}
	return out.Bytes(), nil
}

// ImuMessagesForTopic decodes every sensor_msgs/Imu recorded on topic.
func ImuMessagesForTopic(rb *rosbag.RosBag, topic string) ([]ImuMessage, error) {
	data, err := topicJSON(rb, topic)
	if err != nil {
		return nil, err
	}
	return DecodeImuMessages(bytes.NewReader(data))
}

// DecodeImuMessages decodes newline delimited Imu messages in the JSON layout gobag produces.
func DecodeImuMessages(r io.Reader) ([]ImuMessage, error) {
	var all []ImuMessage
	err := eachLine(r, func(line []byte) error {
		var msg ImuMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			return errors.Wrap(err, "malformed imu message")
		}
		all = append(all, msg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

func eachLine(r io.Reader, fn func(line []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
